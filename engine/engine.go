package engine

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-spheres/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spheres/engine/scene"
	"github.com/Carmen-Shannon/oxy-spheres/engine/window"
)

// ErrNoScene is returned by Run when the engine has no scene to draw.
var ErrNoScene = errors.New("engine: no scene")

// engine implements the Engine interface.
// Input callbacks and frames both run on the window's message loop thread.
type engine struct {
	running  atomic.Bool
	quitOnce sync.Once

	window    window.Window
	scheduler FrameScheduler
	scene     scene.Scene

	profiler         profiler.Profiler
	profilingEnabled bool

	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastRender       time.Time
	frames           atomic.Uint64
	loggedRenderErr  bool
}

// Engine drives the frame loop. Each frame is requested through a FrameScheduler; Step renders
// it and requests the next one, until Quit is called or the window closes.
type Engine interface {
	// Window returns the underlying window, nil for headless engines.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene drawn each frame.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Scheduler returns the scheduler frames are requested through.
	//
	// Returns:
	//   - FrameScheduler: the frame scheduler
	Scheduler() FrameScheduler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers the function called after each presented frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run wires the window's input and resize callbacks to the scene, requests the first frame
	// and runs the window message loop. Blocks until the window closes. Without a window it
	// returns after the first request and the caller drives the scheduler.
	//
	// Returns:
	//   - error: ErrNoScene if no scene is attached
	Run() error

	// Step renders one frame and requests the next. A panic during the frame is logged and
	// stops the engine.
	Step()

	// Running reports whether Run has started and Quit has not been called.
	//
	// Returns:
	//   - bool: true while frames are being requested
	Running() bool

	// Frames returns the number of frames rendered.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Quit stops requesting frames and ends the window's message loop on the next iteration.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Without WithScheduler, a window engine fires frames from the window's message loop and a
// headless engine uses a ManualScheduler.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profilingEnabled: false,
	}
	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	if e.scheduler == nil {
		if e.window != nil {
			e.scheduler = newWindowScheduler(e.window)
		} else {
			e.scheduler = NewManualScheduler()
		}
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Scheduler() FrameScheduler {
	return e.scheduler
}

func (e *engine) Run() error {
	if e.scene == nil {
		return ErrNoScene
	}

	if e.window != nil {
		ctrl := e.scene.Controller()
		e.window.SetKeyDownCallback(ctrl.KeyDown)
		e.window.SetMouseMoveCallback(ctrl.MouseMove)
		e.window.SetResizeCallback(e.scene.Resize)
	}

	e.running.Store(true)
	e.lastRender = time.Now()
	e.scheduler.RequestFrame(e.Step)
	log.Printf("[Engine] running scene %q", e.scene.Name())

	if e.window == nil {
		return nil
	}
	e.window.ProcessMessages()
	e.Quit()
	return nil
}

func (e *engine) Step() {
	if !e.running.Load() {
		e.closeWindow()
		return
	}
	// Recover from panics inside the frame to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	now := time.Now()
	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now

	e.renderFrame()

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}

	if e.running.Load() {
		e.scheduler.RequestFrame(e.Step)
	} else {
		e.closeWindow()
	}
}

// renderFrame runs BeginFrame, Scene.Render, EndFrame and Present. A frame whose target
// cannot be acquired is skipped.
func (e *engine) renderFrame() {
	r := e.scene.Renderer()
	if err := r.BeginFrame(); err != nil {
		return
	}
	if err := e.scene.Render(); err != nil && !e.loggedRenderErr {
		log.Printf("[Engine] render: %v", err)
		e.loggedRenderErr = true
	}
	r.EndFrame()
	r.Present()
	e.frames.Add(1)
}

// closeWindow stops the window's message loop. The window is destroyed by its owner.
func (e *engine) closeWindow() {
	if e.window != nil && e.window.IsRunning() {
		e.window.RequestClose()
	}
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

// Quit stops the frame loop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		log.Printf("[Engine] stopped after %d frames", e.frames.Load())
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
