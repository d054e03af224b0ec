package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releasable struct{ released bool }

func (r *releasable) Release() { r.released = true }

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("spheres")
	assert.Equal(t, "spheres", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Nil(t, p.Handle())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("lines",
		WithDepthCompare(wgpu.CompareFunctionLess),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
		WithDepthWriteEnabled(false),
	)
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
	assert.False(t, p.DepthWriteEnabled())

	off := NewPipeline("no-depth", WithDepthTestEnabled(false))
	assert.Equal(t, wgpu.CompareFunctionAlways, off.DepthCompare())
}

func TestPipelineValidate(t *testing.T) {
	wvs, wfs, err := shader.SphereShaders(shader.LanguageWGSL)
	require.NoError(t, err)
	gvs, gfs, err := shader.SphereShaders(shader.LanguageGLSL)
	require.NoError(t, err)

	assert.ErrorIs(t, NewPipeline("a").Validate(), ErrMissingShader)
	assert.ErrorIs(t, NewPipeline("b", WithVertexShader(wvs)).Validate(), ErrMissingShader)
	assert.ErrorIs(t, NewPipeline("c", WithVertexShader(wvs), WithFragmentShader(gfs)).Validate(), ErrLanguageMismatch)

	gl := NewPipeline("d", WithVertexShader(gvs), WithFragmentShader(gfs))
	assert.NoError(t, gl.Validate())
	assert.Equal(t, shader.LanguageGLSL, gl.Language())
	assert.Same(t, gvs, gl.Shader(shader.ShaderTypeVertex))
	assert.Same(t, gfs, gl.Shader(shader.ShaderTypeFragment))

	assert.NoError(t, NewPipeline("e", WithVertexShader(wvs), WithFragmentShader(wfs)).Validate())
}

func TestPipelineRelease(t *testing.T) {
	p := NewPipeline("spheres")
	h := &releasable{}
	p.SetHandle(h)
	assert.Same(t, h, p.Handle())

	p.Release()
	assert.True(t, h.released)
	assert.Nil(t, p.Handle())

	p.SetHandle(uint32(7))
	p.Release()
	assert.Nil(t, p.Handle())
}
