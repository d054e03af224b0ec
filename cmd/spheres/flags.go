package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-spheres/config"
)

// options are the command line flags. Flags that were not set leave the config untouched.
type options struct {
	configPath string
	backend    string
	width      int
	height     int
	vsync      bool
	msaa       int
	smooth     bool
	profile    bool
	export     string

	set map[string]bool
}

func parseFlags(args []string) (options, error) {
	return parseFlagsTo(args, os.Stderr)
}

func parseFlagsTo(args []string, output io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("spheres", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&o.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&o.backend, "backend", config.BackendWGPU, "rendering backend: wgpu or opengl")
	fs.IntVar(&o.width, "width", 0, "window width in pixels")
	fs.IntVar(&o.height, "height", 0, "window height in pixels")
	fs.BoolVar(&o.vsync, "vsync", true, "wait for vertical blank before presenting")
	fs.IntVar(&o.msaa, "msaa", 4, "multisample count: 1 or 4 (WebGPU only)")
	fs.BoolVar(&o.smooth, "smooth", false, "ease the rotation with a spring")
	fs.BoolVar(&o.profile, "profile", false, "log frame and memory statistics every second")
	fs.StringVar(&o.export, "export", "", "write the sphere field to this .glb file and exit")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		o.set[f.Name] = true
	})
	return o, nil
}

// loadConfig reads the config file, or the defaults, and applies the flags that were set.
func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if o.set["backend"] {
		cfg.Renderer.Backend = o.backend
	}
	if o.set["width"] {
		cfg.Window.Width = o.width
	}
	if o.set["height"] {
		cfg.Window.Height = o.height
	}
	if o.set["vsync"] {
		cfg.Renderer.PresentMode = config.PresentModeUncapped
		if o.vsync {
			cfg.Renderer.PresentMode = config.PresentModeVSync
		}
	}
	if o.set["msaa"] {
		cfg.Renderer.MSAA = o.msaa
	}
	if o.set["smooth"] {
		cfg.Input.Smoothing = o.smooth
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
