package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/buffer_set"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spheres/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           ClearColor
}

// MeshData is the CPU-side geometry a BufferSet is built from. model.Model satisfies it.
type MeshData interface {
	// PositionData returns tightly packed vec3 float32 positions.
	PositionData() []byte
	// ColorData returns tightly packed RGBA float32 colors, one per position.
	ColorData() []byte
	// IndexData returns uint16 triangle indices.
	IndexData() []byte
	// IndexCount returns the number of indices in IndexData.
	IndexCount() int
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API that hides the selected GPU backend behind a frame oriented flow:
// register pipelines once, upload BufferSets once, then every frame call SetTransforms,
// BeginFrame, one DrawCall per BufferSet, EndFrame and Present.
type Renderer interface {
	// BackendType returns the backend this renderer was created with.
	//
	// Returns:
	//   - RendererBackendType: BackendTypeWGPU or BackendTypeOpenGL
	BackendType() RendererBackendType

	// Pipeline retrieves the registered Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines validates and creates the backend objects of one or more pipelines, then
	// caches them by PipelineKey. Keys that are already registered are skipped. Registration
	// stops at the first failure and the failing pipeline is not cached.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: a validation error or a *ShaderError wrapping ErrShaderCompile or ErrShaderLink
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize configures the underlying backend to handle a new surface size.
	// Zero sized surfaces (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect on WebGPU.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitBufferSet creates the position, color and index buffers of a BufferSet from mesh data.
	// The set's index count is taken from the mesh so draws never read past the index buffer.
	//
	// Parameters:
	//   - set: the BufferSet to store the created buffers on
	//   - mesh: the geometry to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitBufferSet(set buffer_set.BufferSet, mesh MeshData) error

	// SetTransforms stages the projection and model-view matrices used by the following draw calls.
	//
	// Parameters:
	//   - projection: the projection matrix (OpenGL clip-space conventions)
	//   - modelView: the model-view matrix shared by every draw in the frame
	SetTransforms(projection, modelView mgl32.Mat4)

	// BeginFrame clears the color and depth targets and begins the main render pass.
	// Must be paired with EndFrame after all DrawCall invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the frame target could not be acquired
	BeginFrame() error

	// DrawCall issues one indexed triangle draw of a BufferSet with the registered pipeline.
	// Multiple DrawCall invocations can be made between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the registered Pipeline to use
	//   - set: the BufferSet holding position, color and index buffers
	//
	// Returns:
	//   - error: ErrPipelineNotFound or ErrBufferSetNotInitialized
	DrawCall(pipelineKey string, set buffer_set.BufferSet) error

	// EndFrame ends the current render pass and submits the recorded work.
	// Does not present the frame; call Present() after EndFrame to display it.
	EndFrame()

	// Present presents the finished frame to the display.
	// Must be called once per frame after EndFrame.
	Present()

	// Release releases every registered pipeline and the backend's GPU resources.
	// BufferSets are owned by the caller and released separately.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type on top of a spawned window.
// The WebGPU backend renders through the window's surface descriptor. The OpenGL backend requires a
// window created with window.GraphicsAPIOpenGL.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window to render into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: an error wrapping ErrContextUnavailable if the graphics context cannot be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	var (
		backend RendererBackend
		err     error
	)
	switch backendType {
	case BackendTypeOpenGL:
		backend, err = newGLRendererBackend(win, r.clearColor)
	default:
		backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
	}
	if err != nil {
		return nil, err
	}

	r.attachBackend(backend, win.Width(), win.Height())
	log.Printf("[Renderer] %s backend ready (%dx%d)", backendType, win.Width(), win.Height())
	return r, nil
}

// newRenderer applies options to a renderer without a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    ClearColor{0, 0, 0, 1},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attachBackend applies the pending present mode and configures the initial surface.
func (r *renderer) attachBackend(backend RendererBackend, width, height int) {
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitBufferSet(set buffer_set.BufferSet, mesh MeshData) error {
	if err := r.backend.InitBufferSet(set, mesh.PositionData(), mesh.ColorData(), mesh.IndexData(), mesh.IndexCount()); err != nil {
		return fmt.Errorf("init buffer set %q: %w", set.Label(), err)
	}
	return nil
}

func (r *renderer) SetTransforms(projection, modelView mgl32.Mat4) {
	r.backend.WriteTransforms(projection, modelView)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, set buffer_set.BufferSet) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %q", ErrPipelineNotFound, pipelineKey)
	}
	if !set.Initialized() {
		return fmt.Errorf("%w: %q", ErrBufferSetNotInitialized, set.Label())
	}

	r.backend.DrawCall(p, set)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
