package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrMissingShader is returned by Validate when a stage has no shader.
	ErrMissingShader = errors.New("pipeline: missing shader")

	// ErrLanguageMismatch is returned by Validate when the stages use different shading languages.
	ErrLanguageMismatch = errors.New("pipeline: shader language mismatch")
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	// handle is the backend object created on registration:
	// *wgpu.RenderPipeline for WebGPU, a linked program for OpenGL
	handle any

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
}

// Pipeline defines the interface for a render pipeline: a vertex and fragment shader pair
// plus the fixed-function state the backend needs to create it. The state is described with
// WebGPU enums; the OpenGL backend translates them to GL state on draw.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader for a stage, nil if not set.
	//
	// Parameters:
	//   - shaderType: the stage to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage
	Shader(shaderType shader.ShaderType) shader.Shader

	// Language returns the shading language shared by both stages.
	//
	// Returns:
	//   - shader.Language: the language of the vertex shader, LanguageWGSL when unset
	Language() shader.Language

	// Validate checks that both stages are present and share a shading language.
	//
	// Returns:
	//   - error: ErrMissingShader or ErrLanguageMismatch, nil when the pipeline can be registered
	Validate() error

	// Handle returns the backend object created when the pipeline was registered.
	// The caller is responsible for type asserting the returned value.
	//
	// Returns:
	//   - any: the backend pipeline object, nil before registration
	Handle() any

	// SetHandle stores the backend object created for this pipeline.
	//
	// Parameters:
	//   - h: the backend pipeline object
	SetHandle(h any)

	// Release releases the backend object if it supports releasing and clears the handle.
	Release()

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthCompare returns the depth comparison function. Defaults to LessEqual.
	//
	// Returns:
	//   - wgpu.CompareFunction: the depth comparison function
	DepthCompare() wgpu.CompareFunction

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render Pipeline with depth testing and writing on, a LessEqual depth
// comparison, no culling, triangle lists and counter-clockwise front faces.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance with the specified configuration
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLessEqual,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Language() shader.Language {
	if p.vertexShader == nil {
		return shader.LanguageWGSL
	}
	return p.vertexShader.Language()
}

func (p *pipeline) Validate() error {
	if p.vertexShader == nil {
		return fmt.Errorf("%w: %s has no vertex shader", ErrMissingShader, p.pipelineKey)
	}
	if p.fragmentShader == nil {
		return fmt.Errorf("%w: %s has no fragment shader", ErrMissingShader, p.pipelineKey)
	}
	if p.vertexShader.Language() != p.fragmentShader.Language() {
		return fmt.Errorf("%w: %s pairs %s with %s", ErrLanguageMismatch, p.pipelineKey,
			p.vertexShader.Language(), p.fragmentShader.Language())
	}
	return nil
}

func (p *pipeline) Handle() any {
	return p.handle
}

func (p *pipeline) SetHandle(h any) {
	p.handle = h
}

func (p *pipeline) Release() {
	if r, ok := p.handle.(interface{ Release() }); ok {
		r.Release()
	}
	p.handle = nil
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	if !p.depthTestEnabled {
		return wgpu.CompareFunctionAlways
	}
	return p.depthCompare
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}
