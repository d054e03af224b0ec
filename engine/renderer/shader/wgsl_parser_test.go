package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripComments(t *testing.T) {
	src := "a // line\nb /* block /* nested */ still */ c\n"
	assert.Equal(t, "a \nb  c\n", stripComments(src))
}

func TestParseVertexLayoutsOrdersByLocation(t *testing.T) {
	src := `
struct Colors { @location(2) color: vec4f, }
struct Positions { @location(0) position: vec3f, @location(1) uv: vec2f, }
struct Out { @builtin(position) pos: vec4f, @location(0) color: vec4f, }
struct Skipped { @location(3) m: mat4x4<f32>, }
`
	layouts := parseVertexLayouts(src)
	require.Len(t, layouts, 2)

	assert.Equal(t, uint64(20), layouts[0].ArrayStride)
	require.Len(t, layouts[0].Attributes, 2)
	assert.Equal(t, uint64(12), layouts[0].Attributes[1].Offset)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, layouts[0].Attributes[1].Format)

	assert.Equal(t, uint32(2), layouts[1].Attributes[0].ShaderLocation)
}

func TestParseBindGroupLayouts(t *testing.T) {
	src := `
struct Light { dir: vec3f, intensity: f32, }
struct Block { lights: array<Light, 4>, count: u32, }
@group(1) @binding(2) var<storage, read> block: Block;
@group(1) @binding(0) var<uniform> scale: f32;
@group(0) @binding(0) var tex: texture_2d<f32>;
`
	groups, names := parseBindGroupLayouts(src, wgpu.ShaderStageFragment)
	assert.NotContains(t, groups, 0)
	require.Len(t, groups[1].Entries, 2)

	first, second := groups[1].Entries[0], groups[1].Entries[1]
	assert.Equal(t, uint32(0), first.Binding)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, first.Buffer.Type)
	assert.Equal(t, uint64(4), first.Buffer.MinBindingSize)

	assert.Equal(t, uint32(2), second.Binding)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, second.Buffer.Type)
	// 4 lights of 16 bytes followed by a u32, rounded to 16
	assert.Equal(t, uint64(80), second.Buffer.MinBindingSize)

	assert.Equal(t, "block", names[1][2])
}

func TestResolveTypeLayout(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		want     wgslTypeLayout
		ok       bool
	}{
		{"scalar", "f32", wgslTypeLayout{4, 4}, true},
		{"vec3", "vec3f", wgslTypeLayout{12, 16}, true},
		{"matrix", "mat4x4<f32>", wgslTypeLayout{64, 16}, true},
		{"fixed array", "array<vec3f, 3>", wgslTypeLayout{48, 16}, true},
		{"runtime array", "array<f32>", wgslTypeLayout{4, 4}, true},
		{"unknown", "Mystery", wgslTypeLayout{}, false},
		{"bad count", "array<f32, N>", wgslTypeLayout{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveTypeLayout(tt.typeName, nil)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntryPoint(t *testing.T) {
	src := "// @fragment fn commented() {}\n@vertex\nfn vs() {}\n@fragment fn fs() {}\n"
	assert.Equal(t, "vs", parseEntryPoint(src, ShaderTypeVertex))
	assert.Equal(t, "fs", parseEntryPoint(src, ShaderTypeFragment))
}
