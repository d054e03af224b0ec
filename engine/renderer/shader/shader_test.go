package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShaderErrors(t *testing.T) {
	_, err := NewShader("empty", ShaderTypeVertex, LanguageWGSL, "  \n")
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = NewShader("no-entry", ShaderTypeFragment, LanguageWGSL, "@vertex fn vs_main() -> @builtin(position) vec4f { return vec4f(); }")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)

	_, err = NewShader("no-main", ShaderTypeVertex, LanguageGLSL, "#version 410 core\nin vec3 a;\n")
	assert.ErrorIs(t, err, ErrMissingEntryPoint)
}

func TestSphereShadersWGSL(t *testing.T) {
	vs, fs, err := SphereShaders(LanguageWGSL)
	require.NoError(t, err)

	assert.Equal(t, SphereVertexKey, vs.Key())
	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, "fs_main", fs.EntryPoint())
	require.NotNil(t, vs.Module())
	assert.Equal(t, vs.Source(), vs.Module().WGSLDescriptor.Code)

	layouts := vs.VertexLayouts()
	require.Len(t, layouts, 2)
	assert.Equal(t, uint64(12), layouts[0].ArrayStride)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layouts[0].Attributes[0].Format)
	assert.Equal(t, uint32(0), layouts[0].Attributes[0].ShaderLocation)
	assert.Equal(t, uint64(16), layouts[1].ArrayStride)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, layouts[1].Attributes[0].Format)
	assert.Equal(t, uint32(1), layouts[1].Attributes[0].ShaderLocation)
	assert.Empty(t, fs.VertexLayouts())

	groups := vs.BindGroupLayoutDescriptors()
	require.Contains(t, groups, 0)
	require.Len(t, groups[0].Entries, 1)
	entry := groups[0].Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.Equal(t, uint64(128), entry.Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, entry.Visibility)
	assert.Equal(t, "transforms", vs.BindGroupVarName(0, 0))
	assert.Empty(t, vs.BindGroupVarName(1, 0))
	assert.Empty(t, fs.BindGroupLayoutDescriptors())
}

func TestSphereShadersGLSL(t *testing.T) {
	vs, fs, err := SphereShaders(LanguageGLSL)
	require.NoError(t, err)

	assert.Equal(t, "main", vs.EntryPoint())
	assert.Equal(t, "410 core", vs.Version())
	assert.Nil(t, vs.Module())

	assert.Equal(t, []Variable{
		{Name: "aVertexPosition", Type: "vec3"},
		{Name: "aVertexColor", Type: "vec4"},
	}, vs.Attributes())
	assert.ElementsMatch(t, []Variable{
		{Name: "uModelViewMatrix", Type: "mat4"},
		{Name: "uProjectionMatrix", Type: "mat4"},
	}, vs.Uniforms())

	pos, ok := vs.Attribute("aVertexPosition")
	require.True(t, ok)
	assert.Equal(t, int32(3), pos.Components())
	_, ok = vs.Attribute("aMissing")
	assert.False(t, ok)

	assert.Empty(t, fs.Attributes())
	assert.Empty(t, fs.Uniforms())
}

func TestShaderTypeAndLanguageStrings(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.Equal(t, "wgsl", LanguageWGSL.String())
	assert.Equal(t, "glsl", LanguageGLSL.String())
}
