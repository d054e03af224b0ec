package shader

import (
	"embed"
	"fmt"
)

//go:embed assets/*
var assets embed.FS

const (
	// SphereVertexKey is the key of the built-in sphere vertex shader.
	SphereVertexKey = "sphere-vertex"

	// SphereFragmentKey is the key of the built-in sphere fragment shader.
	SphereFragmentKey = "sphere-fragment"
)

// SphereShaders loads the built-in flat-color sphere program for a shading language.
// The vertex stage applies projection * modelView to each position and passes the
// vertex color through; the fragment stage writes the interpolated color.
//
// Parameters:
//   - language: LanguageWGSL for the WebGPU backend or LanguageGLSL for OpenGL
//
// Returns:
//   - Shader: the vertex shader
//   - Shader: the fragment shader
//   - error: an error if an embedded source cannot be read or reflected
func SphereShaders(language Language) (Shader, Shader, error) {
	vertex, err := loadEmbedded(SphereVertexKey, ShaderTypeVertex, language)
	if err != nil {
		return nil, nil, err
	}
	fragment, err := loadEmbedded(SphereFragmentKey, ShaderTypeFragment, language)
	if err != nil {
		return nil, nil, err
	}
	return vertex, fragment, nil
}

func loadEmbedded(key string, shaderType ShaderType, language Language) (Shader, error) {
	path := fmt.Sprintf("assets/sphere_%s.%s", shaderType, language)
	data, err := assets.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader: read %s: %w", path, err)
	}
	return NewShader(key, shaderType, language, string(data))
}
