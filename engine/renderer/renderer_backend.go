package renderer

import (
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/buffer_set"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeOpenGL selects the OpenGL 4.1 core rendering backend.
	BackendTypeOpenGL
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeOpenGL:
		return "OpenGL"
	default:
		return "WebGPU"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4. The OpenGL backend renders to the default
// framebuffer and ignores the setting.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// ClearColor is the RGBA color the color target is cleared to at the start of each frame.
type ClearColor [4]float64

// RendererBackend is the contract every GPU backend implements for the Renderer.
// All methods are called from the render thread.
type RendererBackend interface {
	// ConfigureSurface (re)creates the size dependent targets and sets the viewport.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles the pipeline's shaders, creates the backend pipeline
	// object and stores it on the pipeline via SetHandle.
	//
	// Parameters:
	//   - p: the pipeline to create
	//
	// Returns:
	//   - error: a *ShaderError on compile or link failure
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitBufferSet creates the position, color and index buffers of a set and uploads the data.
	//
	// Parameters:
	//   - set: the BufferSet to store the buffers on
	//   - positions: tightly packed vec3 float32 positions
	//   - colors: tightly packed RGBA float32 colors
	//   - indices: uint16 triangle indices
	//   - indexCount: the number of indices in indices
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitBufferSet(set buffer_set.BufferSet, positions, colors, indices []byte, indexCount int) error

	// WriteTransforms stages the projection and model-view matrices for the following draws.
	//
	// Parameters:
	//   - projection: the projection matrix in OpenGL clip-space conventions
	//   - modelView: the model-view matrix
	WriteTransforms(projection, modelView mgl32.Mat4)

	// BeginFrame clears color and depth and starts recording draws.
	//
	// Returns:
	//   - error: an error if the frame target could not be acquired
	BeginFrame() error

	// DrawCall binds the pipeline and the set's buffers and issues one indexed triangle draw.
	//
	// Parameters:
	//   - p: the registered pipeline
	//   - set: the initialized BufferSet
	DrawCall(p pipeline.Pipeline, set buffer_set.BufferSet)

	// EndFrame finishes recording and submits the frame's work.
	EndFrame()

	// Present displays the finished frame.
	Present()

	// Release frees backend-wide GPU resources.
	Release()
}
