package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrEmptySource is returned by NewShader when no source code is provided.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrMissingEntryPoint is returned by NewShader when the source has no entry point for its stage.
	ErrMissingEntryPoint = errors.New("shader: missing entry point")
)

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// Language identifies the shading language of a shader source.
type Language int

const (
	// LanguageWGSL is consumed by the WebGPU backend.
	LanguageWGSL Language = iota

	// LanguageGLSL is consumed by the OpenGL backend.
	LanguageGLSL
)

func (l Language) String() string {
	switch l {
	case LanguageWGSL:
		return "wgsl"
	case LanguageGLSL:
		return "glsl"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	language   Language
	entryPoint string

	// wgsl reflection
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor

	// glsl reflection
	version    string
	attributes []Variable
	uniforms   []Variable
}

// Shader defines the interface for a loaded and reflected shader stage. WGSL shaders expose
// the bind group and vertex buffer layouts the WebGPU backend needs for pipeline creation.
// GLSL shaders expose the attribute and uniform declarations the OpenGL backend binds by name.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labels and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the shader source code.
	//
	// Returns:
	//   - string: the source code of the shader
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Language returns the shading language of the source.
	//
	// Returns:
	//   - Language: LanguageWGSL or LanguageGLSL
	Language() Language

	// EntryPoint returns the entry point name for this shader.
	// GLSL shaders always report "main".
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for a WGSL shader, nil for GLSL.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// VertexLayouts retrieves the vertex buffer layouts of a WGSL vertex shader, one per vertex
	// input struct, ordered by their lowest shader location. The index in the slice is the
	// vertex buffer slot the renderer binds to.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the ordered vertex buffer layouts, empty for other shaders
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors of a WGSL shader.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// Version returns the GLSL #version directive value (e.g. "410 core"), empty for WGSL.
	//
	// Returns:
	//   - string: the version string
	Version() string

	// Attributes returns the vertex attributes declared by a GLSL vertex shader in source order.
	//
	// Returns:
	//   - []Variable: the declared attributes, empty for other shaders
	Attributes() []Variable

	// Attribute looks up a declared GLSL vertex attribute by name.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - Variable: the attribute declaration
	//   - bool: true if the attribute is declared
	Attribute(name string) (Variable, bool)

	// Uniforms returns the uniforms declared by a GLSL shader in source order.
	//
	// Returns:
	//   - []Variable: the declared uniforms, empty for WGSL
	Uniforms() []Variable
}

var _ Shader = &shader{}

// NewShader creates a Shader from source and reflects the metadata the backends need.
//
// Parameters:
//   - key: a unique identifier for the shader, used for labels and lookups
//   - shaderType: the stage of the shader (vertex or fragment)
//   - language: the shading language of the source
//   - source: the shader source code
//
// Returns:
//   - Shader: the reflected shader
//   - error: ErrEmptySource when source is blank, ErrMissingEntryPoint when no entry point is found
func NewShader(key string, shaderType ShaderType, language Language, source string) (Shader, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, key)
	}
	s := &shader{
		key:                        key,
		source:                     source,
		shaderType:                 shaderType,
		language:                   language,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingVarNames:            make(map[int]map[int]string),
	}

	switch language {
	case LanguageGLSL:
		s.reflectGLSL()
	default:
		s.reflectWGSL()
	}

	if s.entryPoint == "" {
		return nil, fmt.Errorf("%w: %s has no %s entry point", ErrMissingEntryPoint, key, shaderType)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Language() Language {
	return s.language
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) Version() string {
	return s.version
}

func (s *shader) Attributes() []Variable {
	return s.attributes
}

func (s *shader) Attribute(name string) (Variable, bool) {
	for _, a := range s.attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Variable{}, false
}

func (s *shader) Uniforms() []Variable {
	return s.uniforms
}

// reflectWGSL builds the module descriptor and extracts the entry point, vertex layouts
// and bind group layouts from WGSL source.
func (s *shader) reflectWGSL() {
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)

	visibility := wgpu.ShaderStageFragment
	if s.shaderType == ShaderTypeVertex {
		s.vertexLayouts = parseVertexLayouts(s.source)
		visibility = wgpu.ShaderStageVertex
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
}

// reflectGLSL extracts the version, attributes and uniforms from GLSL source.
func (s *shader) reflectGLSL() {
	s.version = parseGLSLVersion(s.source)
	if hasGLSLMain(s.source) {
		s.entryPoint = "main"
	}
	if s.shaderType == ShaderTypeVertex {
		s.attributes = parseGLSLAttributes(s.source)
	}
	s.uniforms = parseGLSLUniforms(s.source)
}
