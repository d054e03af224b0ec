package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGLSL(t *testing.T) {
	src := `#version 300 es
precision highp float;
// in vec3 commented;
layout(location = 0) in highp vec3 aPosition;
attribute vec2 aUV;
uniform mat4 uMatrix;
uniform sampler2D uTexture;
out vec2 vUV;

void main(void) {
    vUV = aUV;
}
`
	assert.Equal(t, "300 es", parseGLSLVersion(src))
	assert.True(t, hasGLSLMain(src))
	assert.Equal(t, []Variable{
		{Name: "aPosition", Type: "vec3"},
		{Name: "aUV", Type: "vec2"},
	}, parseGLSLAttributes(src))
	assert.Equal(t, []Variable{
		{Name: "uMatrix", Type: "mat4"},
		{Name: "uTexture", Type: "sampler2D"},
	}, parseGLSLUniforms(src))

	assert.Empty(t, parseGLSLVersion("void main() {}"))
	assert.False(t, hasGLSLMain("void mainly() {}"))
}

func TestVariableComponents(t *testing.T) {
	assert.Equal(t, int32(1), Variable{Type: "float"}.Components())
	assert.Equal(t, int32(2), Variable{Type: "vec2"}.Components())
	assert.Equal(t, int32(4), Variable{Type: "vec4"}.Components())
	assert.Equal(t, int32(0), Variable{Type: "mat4"}.Components())
}
