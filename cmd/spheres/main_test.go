package main

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-spheres/config"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsConfigErrors(t *testing.T) {
	o, err := parseFlagsTo([]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, io.Discard)
	require.NoError(t, err)

	err = run(o)
	require.Error(t, err)
	assert.Contains(t, failureMessage(err), "load configuration")
}

func TestRunExportOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.glb")
	o, err := parseFlagsTo([]string{"-export", path}, io.Discard)
	require.NoError(t, err)

	require.NoError(t, run(o))
	assert.FileExists(t, path)
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"context",
			&startupError{backend: renderer.BackendTypeOpenGL, err: renderer.ErrContextUnavailable},
			"Unable to initialize OpenGL. Your machine may not support it: renderer: graphics context unavailable",
		},
		{
			"compile",
			&renderer.ShaderError{Stage: "vertex", Log: "0:3: syntax error", Err: renderer.ErrShaderCompile},
			"An error occurred compiling the vertex shader: 0:3: syntax error",
		},
		{
			"link",
			&renderer.ShaderError{Stage: "program", Log: "missing uModelViewMatrix", Err: renderer.ErrShaderLink},
			"Unable to initialize the shader program: missing uModelViewMatrix",
		},
		{
			"other",
			config.ErrInvalidSphereArray,
			"Unable to start: config: invalid sphere array",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureMessage(tt.err))
		})
	}
}

func TestStartupErrorUnwraps(t *testing.T) {
	err := &startupError{backend: renderer.BackendTypeWGPU, err: renderer.ErrContextUnavailable}
	assert.True(t, errors.Is(err, renderer.ErrContextUnavailable))
	assert.Contains(t, err.Error(), "WebGPU")
}
