package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-spheres/config"
	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	o, err := parseFlagsTo(nil, io.Discard)
	require.NoError(t, err)

	cfg, err := loadConfig(o)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spheres.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 800\nheight = 600\n[renderer]\nmsaa = 1\n"), 0o644))

	o, err := parseFlagsTo([]string{"-config", path, "-backend", "opengl", "-height", "700", "-vsync=false", "-smooth"}, io.Discard)
	require.NoError(t, err)

	cfg, err := loadConfig(o)
	require.NoError(t, err)
	assert.Equal(t, config.BackendOpenGL, cfg.Renderer.Backend)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 700, cfg.Window.Height)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, config.PresentModeUncapped, cfg.Renderer.PresentMode)
	assert.True(t, cfg.Input.Smoothing)
}

func TestFlagsValidated(t *testing.T) {
	o, err := parseFlagsTo([]string{"-backend", "metal"}, io.Discard)
	require.NoError(t, err)

	_, err = loadConfig(o)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestParseFlagsErrors(t *testing.T) {
	_, err := parseFlagsTo([]string{"-h"}, io.Discard)
	assert.ErrorIs(t, err, flag.ErrHelp)

	_, err = parseFlagsTo([]string{"extra"}, io.Discard)
	assert.Error(t, err)
}

func TestExportField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.glb")
	descriptors, err := config.Default().Descriptors()
	require.NoError(t, err)

	require.NoError(t, exportField(path, model.NewGenerator(), descriptors))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	assert.Len(t, doc.Meshes, len(descriptors))
}
