package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer"
	"github.com/pelletier/go-toml/v2"
)

//go:embed assets/default.toml
var defaultTOML []byte

var (
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("config: invalid")

	// ErrInvalidSphereArray is returned when the flat sphere list is not made of
	// (offsetX, offsetY, offsetZ, radius) quadruples with non-negative radii.
	ErrInvalidSphereArray = errors.New("config: invalid sphere array")
)

// Backend names accepted in [renderer] backend and by the -backend flag.
const (
	BackendWGPU   = "wgpu"
	BackendOpenGL = "opengl"
)

// Present mode names accepted in [renderer] present_mode.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// Config is the full application configuration.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Camera   CameraConfig   `toml:"camera"`
	Mesh     MeshConfig     `toml:"mesh"`
	Input    InputConfig    `toml:"input"`
	Scene    SceneConfig    `toml:"scene"`
}

// WindowConfig is the [window] section.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig is the [renderer] section.
type RendererConfig struct {
	Backend       string `toml:"backend"`
	PresentMode   string `toml:"present_mode"`
	MSAA          int    `toml:"msaa"`
	ForceSoftware bool   `toml:"force_software"`
}

// CameraConfig is the [camera] section. The field of view is vertical.
type CameraConfig struct {
	FovDegrees float32 `toml:"fov_degrees"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
	Distance   float32 `toml:"distance"`
}

// MeshConfig is the [mesh] section.
type MeshConfig struct {
	LatBands  int `toml:"lat_bands"`
	LongBands int `toml:"long_bands"`
	Workers   int `toml:"workers"`
}

// InputConfig is the [input] section. Frequency and Damping only apply with Smoothing.
type InputConfig struct {
	DragDivisor float32 `toml:"drag_divisor"`
	Smoothing   bool    `toml:"smoothing"`
	Frequency   float64 `toml:"frequency"`
	Damping     float64 `toml:"damping"`
}

// SceneConfig is the [scene] section.
type SceneConfig struct {
	ClearColor [4]float64 `toml:"clear_color"`
	Spheres    []float32  `toml:"spheres"`
}

// Default returns the embedded default configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	var cfg Config
	if err := decode(bytes.NewReader(defaultTOML), &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads a TOML file on top of the defaults and validates the result.
// Keys the file does not set keep their default values; unknown keys are an error.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - Config: the merged configuration
//   - error: an open, decode or validation error
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML from r on top of the defaults and validates the result.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode or validation error
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode(r, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
}

// Validate checks every section and returns the first problem found, wrapped in ErrInvalidConfig.
//
// Returns:
//   - error: nil when the configuration is usable
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseBackend(c.Renderer.Backend); err != nil {
		return err
	}
	if _, err := ParsePresentMode(c.Renderer.PresentMode); err != nil {
		return err
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		return invalid("msaa must be 1 or 4, got %d", c.Renderer.MSAA)
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return invalid("fov_degrees %.2f must be in (0, 180)", c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("clip planes near=%.3f far=%.3f need 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Distance <= 0 {
		return invalid("camera distance %.2f must be positive", c.Camera.Distance)
	}
	if err := model.ValidateBands(c.Mesh.LatBands, c.Mesh.LongBands); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Mesh.Workers < 0 {
		return invalid("workers %d must not be negative", c.Mesh.Workers)
	}
	if c.Input.DragDivisor <= 0 {
		return invalid("drag_divisor %.2f must be positive", c.Input.DragDivisor)
	}
	if c.Input.Smoothing && (c.Input.Frequency <= 0 || c.Input.Damping < 0) {
		return invalid("smoothing needs frequency > 0 and damping >= 0")
	}
	for i, v := range c.Scene.ClearColor {
		if v < 0 || v > 1 {
			return invalid("clear_color[%d] = %.3f is outside [0, 1]", i, v)
		}
	}
	if _, err := ParseSphereArray(c.Scene.Spheres); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Descriptors converts the configured sphere list into descriptors.
//
// Returns:
//   - []model.Descriptor: one descriptor per sphere, ids are flat list indices
//   - error: ErrInvalidSphereArray for a malformed list
func (c Config) Descriptors() ([]model.Descriptor, error) {
	return ParseSphereArray(c.Scene.Spheres)
}

// ParseSphereArray consumes values four at a time as (offsetX, offsetY, offsetZ, radius).
// The sphere id is the index of its first value in the flat list (0, 4, 8, ...), which
// selects its palette slot.
//
// Parameters:
//   - values: the flat sphere list
//
// Returns:
//   - []model.Descriptor: the descriptors in list order, ids stepping by 4
//   - error: ErrInvalidSphereArray if the length is not a multiple of four or a radius is negative
func ParseSphereArray(values []float32) ([]model.Descriptor, error) {
	if len(values)%4 != 0 {
		return nil, fmt.Errorf("%w: %d values is not a multiple of 4", ErrInvalidSphereArray, len(values))
	}
	descriptors := make([]model.Descriptor, 0, len(values)/4)
	for i := 0; i+4 <= len(values); i += 4 {
		d := model.Descriptor{
			Offset: [3]float32{values[i], values[i+1], values[i+2]},
			Radius: values[i+3],
			ID:     i,
		}
		if d.Radius < 0 {
			return nil, fmt.Errorf("%w: sphere %d has negative radius %.3f", ErrInvalidSphereArray, i/4, d.Radius)
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// ParseBackend maps a backend name onto a renderer backend type.
//
// Parameters:
//   - name: "wgpu" or "opengl"
//
// Returns:
//   - renderer.RendererBackendType: the backend type
//   - error: ErrInvalidConfig for unknown names
func ParseBackend(name string) (renderer.RendererBackendType, error) {
	switch name {
	case BackendWGPU:
		return renderer.BackendTypeWGPU, nil
	case BackendOpenGL:
		return renderer.BackendTypeOpenGL, nil
	default:
		return 0, fmt.Errorf("%w: unknown backend %q, want %q or %q", ErrInvalidConfig, name, BackendWGPU, BackendOpenGL)
	}
}

// ParsePresentMode maps a present mode name onto a renderer present mode.
//
// Parameters:
//   - name: "vsync" or "uncapped"
//
// Returns:
//   - renderer.PresentMode: the present mode
//   - error: ErrInvalidConfig for unknown names
func ParsePresentMode(name string) (renderer.PresentMode, error) {
	switch name {
	case PresentModeVSync:
		return renderer.PresentModeVSync, nil
	case PresentModeUncapped:
		return renderer.PresentModeUncapped, nil
	default:
		return 0, fmt.Errorf("%w: unknown present mode %q, want %q or %q", ErrInvalidConfig, name, PresentModeVSync, PresentModeUncapped)
	}
}
