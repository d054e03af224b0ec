package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/Carmen-Shannon/oxy-spheres/config"
	"github.com/Carmen-Shannon/oxy-spheres/engine"
	"github.com/Carmen-Shannon/oxy-spheres/engine/camera"
	"github.com/Carmen-Shannon/oxy-spheres/engine/export"
	"github.com/Carmen-Shannon/oxy-spheres/engine/input"
	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-spheres/engine/scene"
	"github.com/Carmen-Shannon/oxy-spheres/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}

	// Deferred releases inside run have completed by the time an error reaches here.
	if err := run(opts); err != nil {
		log.Print(failureMessage(err))
		os.Exit(1)
	}
}

// run wires and runs the program. Every GPU resource it creates is released before it returns.
func run(opts options) error {
	// ── Config ──────────────────────────────────────────────────────
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	descriptors, err := cfg.Descriptors()
	if err != nil {
		return fmt.Errorf("read the sphere list: %w", err)
	}
	generator := model.NewGenerator(model.WithBands(cfg.Mesh.LatBands, cfg.Mesh.LongBands))

	// ── Export only ─────────────────────────────────────────────────
	if opts.export != "" {
		if err := exportField(opts.export, generator, descriptors); err != nil {
			return fmt.Errorf("export the sphere field: %w", err)
		}
		return nil
	}

	backend, _ := config.ParseBackend(cfg.Renderer.Backend)
	presentMode, _ := config.ParsePresentMode(cfg.Renderer.PresentMode)

	// ── Window ──────────────────────────────────────────────────────
	api := window.GraphicsAPINone
	if backend == renderer.BackendTypeOpenGL {
		api = window.GraphicsAPIOpenGL
	}
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithGraphicsAPI(api),
	)
	if err != nil {
		return &startupError{backend: backend, err: fmt.Errorf("%w: %w", renderer.ErrContextUnavailable, err)}
	}
	defer func() {
		if err := win.Close(); err != nil {
			log.Printf("[Spheres] %v", err)
		}
	}()

	// ── Renderer ────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(backend, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithClearColor(renderer.ClearColor(cfg.Scene.ClearColor)),
	)
	if err != nil {
		return &startupError{backend: backend, err: err}
	}
	defer r.Release()

	// ── Shaders + Pipeline ──────────────────────────────────────────
	language := shader.LanguageWGSL
	if backend == renderer.BackendTypeOpenGL {
		language = shader.LanguageGLSL
	}
	vs, fs, err := shader.SphereShaders(language)
	if err != nil {
		return fmt.Errorf("load the shaders: %w", err)
	}
	spheres := pipeline.NewPipeline(scene.DefaultPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)

	// ── Camera + Input ──────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.Camera.FovDegrees)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithDistance(cfg.Camera.Distance),
	)
	ctrl := input.NewController(input.WithDragDivisor(cfg.Input.DragDivisor))

	// ── Scene ───────────────────────────────────────────────────────
	sceneOpts := []scene.SceneBuilderOption{
		scene.WithDescriptors(descriptors...),
		scene.WithGenerator(generator),
		scene.WithPipeline(spheres),
	}
	if cfg.Mesh.Workers > 0 {
		sceneOpts = append(sceneOpts, scene.WithWorkers(cfg.Mesh.Workers))
	}
	if cfg.Input.Smoothing {
		sceneOpts = append(sceneOpts, scene.WithSmoother(input.NewSmoother(60, cfg.Input.Frequency, cfg.Input.Damping)))
	}
	sc := scene.NewScene("spheres", r, ctrl, cam, sceneOpts...)
	defer sc.Release()
	if err := sc.Build(); err != nil {
		return err
	}

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithProfiling(opts.profile),
	)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	go func() {
		<-interrupt
		eng.Quit()
	}()

	log.Printf("[Spheres] %d spheres on %s. X/Y/Z select the axis, drag to rotate, Esc quits", len(descriptors), backend)
	return eng.Run()
}

// startupError marks a failure to create the window or graphics context for a backend.
type startupError struct {
	backend renderer.RendererBackendType
	err     error
}

func (e *startupError) Error() string {
	return fmt.Sprintf("%s: %v", e.backend, e.err)
}

func (e *startupError) Unwrap() error {
	return e.err
}

// failureMessage formats the fatal report for an error returned by run.
func failureMessage(err error) string {
	var (
		startErr  *startupError
		shaderErr *renderer.ShaderError
	)
	switch {
	case errors.As(err, &startErr):
		return fmt.Sprintf("Unable to initialize %s. Your machine may not support it: %v", startErr.backend, startErr.err)
	case errors.As(err, &shaderErr) && errors.Is(err, renderer.ErrShaderCompile):
		return fmt.Sprintf("An error occurred compiling the %s shader: %s", shaderErr.Stage, shaderErr.Log)
	case errors.As(err, &shaderErr):
		return fmt.Sprintf("Unable to initialize the shader program: %s", shaderErr.Log)
	default:
		return fmt.Sprintf("Unable to start: %v", err)
	}
}

// exportField generates every sphere and writes them to a GLB file.
func exportField(path string, generator model.Generator, descriptors []model.Descriptor) error {
	models := make([]model.Model, 0, len(descriptors))
	for _, d := range descriptors {
		m, err := generator.Generate(d)
		if err != nil {
			return err
		}
		models = append(models, m)
	}
	return export.WriteGLB(path, models)
}
