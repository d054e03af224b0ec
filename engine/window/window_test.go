package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowBuilderOptions(t *testing.T) {
	w := &engineWindow{minWidth: 1, minHeight: 2, maxWidth: 3, maxHeight: 4}
	for _, opt := range []WindowBuilderOption{
		WithTitle("spheres"),
		WithWidth(800),
		WithHeight(600),
		WithGraphicsAPI(GraphicsAPIOpenGL),
		WithSizeLimits(100, 0, 1920, -1),
	} {
		opt(w)
	}

	assert.Equal(t, "spheres", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, GraphicsAPIOpenGL, w.GraphicsAPI())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 2, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 4, w.maxHeight)
}

func TestUnspawnedWindow(t *testing.T) {
	w := &engineWindow{}
	called := false
	w.SetUpdateCallback(func() { called = true })

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.NotPanics(t, w.RequestClose)
	assert.Error(t, w.Close())

	// the loop exits immediately and never calls back
	w.ProcessMessages()
	assert.False(t, called)

	// context helpers are no-ops without an OpenGL context
	w.MakeContextCurrent()
	w.SwapBuffers()
	w.SetSwapInterval(1)
}
