package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, math.Pi/2, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(500), c.Far())
	assert.Equal(t, float32(250), c.Distance())
	assert.Equal(t, float32(1), c.Aspect())
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	assert.Equal(t, mgl32.Perspective(DefaultFov, 16.0/9.0, 0.1, 500), c.Projection())

	c.SetViewport(800, 400)
	assert.Equal(t, float32(2), c.Aspect())
	assert.Equal(t, mgl32.Perspective(DefaultFov, 2, 0.1, 500), c.Projection())

	c.SetViewport(800, 0)
	c.SetAspect(-1)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestCameraModelViewIdentityRotation(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Translate3D(0, 0, -250), c.ModelView(0, mgl32.Vec3{0, 0, 1}))
}

func TestCameraModelViewRotation(t *testing.T) {
	c := NewCamera(WithDistance(100))

	mv := c.ModelView(90, mgl32.Vec3{0, 0, 1})
	p := mv.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 1, p.Y(), 1e-5)
	assert.InDelta(t, -100, p.Z(), 1e-5)

	// non-unit axes are normalized
	assert.True(t, mv.ApproxEqualThreshold(c.ModelView(90, mgl32.Vec3{0, 0, 5}), 1e-6))

	// a zero axis only translates
	assert.Equal(t, mgl32.Translate3D(0, 0, -100), c.ModelView(30, mgl32.Vec3{}))
}

func TestGPUTransformUniformMarshal(t *testing.T) {
	u := GPUTransformUniform{
		Projection: mgl32.Perspective(DefaultFov, 1, 0.1, 500),
		ModelView:  mgl32.Translate3D(0, 0, -250),
	}
	assert.Equal(t, 128, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 128)
	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, u.Projection[0], read(0))
	assert.Equal(t, u.Projection[11], read(44))
	assert.Equal(t, float32(-250), read(64+14*4))
}
