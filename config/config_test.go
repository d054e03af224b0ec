package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spheres/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "oxy-spheres", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, BackendWGPU, cfg.Renderer.Backend)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
	assert.Equal(t, float32(90), cfg.Camera.FovDegrees)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, float32(500), cfg.Camera.Far)
	assert.Equal(t, float32(250), cfg.Camera.Distance)
	assert.Equal(t, 10, cfg.Mesh.LatBands)
	assert.Equal(t, float32(100), cfg.Input.DragDivisor)
	assert.False(t, cfg.Input.Smoothing)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, cfg.Scene.ClearColor)

	descriptors, err := cfg.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultDescriptors(), descriptors)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
[renderer]
backend = "opengl"
msaa = 1

[scene]
spheres = [1, 2, 3, 4, 5, 6, 7, 8]
`))
	require.NoError(t, err)

	assert.Equal(t, BackendOpenGL, cfg.Renderer.Backend)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, PresentModeVSync, cfg.Renderer.PresentMode)
	assert.Equal(t, 640, cfg.Window.Width)

	descriptors, err := cfg.Descriptors()
	require.NoError(t, err)
	assert.Equal(t, []model.Descriptor{
		{Offset: [3]float32{1, 2, 3}, Radius: 4, ID: 0},
		{Offset: [3]float32{5, 6, 7}, Radius: 8, ID: 4},
	}, descriptors)
}

func TestSphereArrayPaletteOrder(t *testing.T) {
	values := make([]float32, 4*7)
	descriptors, err := ParseSphereArray(values)
	require.NoError(t, err)

	slots := make([]int, 0, len(descriptors))
	for _, d := range descriptors {
		slots = append(slots, model.DefaultPalette.Index(d.ID))
	}
	assert.Equal(t, []int{0, 12, 3, 15, 6, 18, 9}, slots)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("[window]\ncolour = \"red\"\n"))
	assert.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
		err  error
	}{
		{"zero width", "[window]\nwidth = 0", ErrInvalidConfig},
		{"unknown backend", "[renderer]\nbackend = \"vulkan\"", ErrInvalidConfig},
		{"unknown present mode", "[renderer]\npresent_mode = \"mailbox\"", ErrInvalidConfig},
		{"msaa 2", "[renderer]\nmsaa = 2", ErrInvalidConfig},
		{"fov 180", "[camera]\nfov_degrees = 180.0", ErrInvalidConfig},
		{"far before near", "[camera]\nnear = 10.0\nfar = 5.0", ErrInvalidConfig},
		{"zero distance", "[camera]\ndistance = 0.0", ErrInvalidConfig},
		{"zero bands", "[mesh]\nlat_bands = 0", model.ErrInvalidBands},
		{"too many bands", "[mesh]\nlat_bands = 300\nlong_bands = 300", model.ErrInvalidBands},
		{"negative workers", "[mesh]\nworkers = -1", ErrInvalidConfig},
		{"zero divisor", "[input]\ndrag_divisor = 0.0", ErrInvalidConfig},
		{"bad spring", "[input]\nsmoothing = true\nfrequency = 0.0", ErrInvalidConfig},
		{"clear color", "[scene]\nclear_color = [2.0, 0.0, 0.0, 1.0]", ErrInvalidConfig},
		{"ragged spheres", "[scene]\nspheres = [1, 2, 3]", ErrInvalidSphereArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.toml))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spheres.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"demo\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Window.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSphereArray(t *testing.T) {
	descriptors, err := ParseSphereArray(nil)
	require.NoError(t, err)
	assert.Empty(t, descriptors)

	descriptors, err = ParseSphereArray([]float32{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []model.Descriptor{{}}, descriptors)

	_, err = ParseSphereArray([]float32{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, ErrInvalidSphereArray)

	_, err = ParseSphereArray([]float32{0, 0, 0, -1})
	assert.ErrorIs(t, err, ErrInvalidSphereArray)
}

func TestParseBackendAndPresentMode(t *testing.T) {
	b, err := ParseBackend("opengl")
	require.NoError(t, err)
	assert.Equal(t, renderer.BackendTypeOpenGL, b)

	m, err := ParsePresentMode("uncapped")
	require.NoError(t, err)
	assert.Equal(t, renderer.PresentModeUncapped, m)

	_, err = ParseBackend("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
