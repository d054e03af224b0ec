package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-spheres/engine/profiler"
	"github.com/Carmen-Shannon/oxy-spheres/engine/scene"
	"github.com/Carmen-Shannon/oxy-spheres/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default log-reporting profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine and whose input is routed
// to the scene's controller.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScheduler sets the scheduler frames are requested through.
//
// Parameters:
//   - s: the frame scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s FrameScheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithScene sets the scene drawn each frame.
//
// Parameters:
//   - s: the Scene to draw
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
