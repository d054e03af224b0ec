package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-spheres/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultFov is the vertical field of view in radians (90 degrees).
	DefaultFov = float32(math.Pi / 2)

	// DefaultNear is the near clipping plane distance.
	DefaultNear = float32(0.1)

	// DefaultFar is the far clipping plane distance.
	DefaultFar = float32(500)

	// DefaultDistance is how far the sphere field is pushed back along -Z.
	DefaultDistance = float32(250)
)

type cameraImpl struct {
	mu *sync.Mutex

	fov      float32
	aspect   float32
	near     float32
	far      float32
	distance float32

	projectionMatrix mgl32.Mat4
}

// Camera defines a fixed perspective camera looking down -Z at a field pushed back by Distance.
// Projection matrices use OpenGL clip-space conventions; WebGPU consumers apply
// common.WebGPUProjection before upload.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Distance returns how far the model is translated along -Z.
	//
	// Returns:
	//   - float32: the model translation distance
	Distance() float32

	// Projection returns the perspective projection for the current aspect ratio.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	Projection() mgl32.Mat4

	// ModelView builds translate(0, 0, -Distance) * rotate(angle, axis).
	// The axis is normalized first; a zero axis leaves only the translation.
	//
	// Parameters:
	//   - angleDegrees: rotation angle in degrees
	//   - axis: rotation axis
	//
	// Returns:
	//   - mgl32.Mat4: the model-view matrix (column-major)
	ModelView(angleDegrees float32, axis mgl32.Vec3) mgl32.Mat4

	// SetAspect sets the aspect ratio and recomputes the projection.
	// Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetViewport sets the aspect ratio from a viewport size in pixels.
	// A zero height (minimized window) is ignored.
	//
	// Parameters:
	//   - width, height: viewport dimensions
	SetViewport(width, height int)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with a 90 degree field of view, near 0.1, far 500,
// distance 250 and a square aspect, then applies options.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		fov:      DefaultFov,
		aspect:   1,
		near:     DefaultNear,
		far:      DefaultFar,
		distance: DefaultDistance,
	}
	for _, opt := range options {
		opt(c)
	}
	c.updateProjection()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

func (c *cameraImpl) Projection() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ModelView(angleDegrees float32, axis mgl32.Vec3) mgl32.Mat4 {
	c.mu.Lock()
	distance := c.distance
	c.mu.Unlock()

	translate := mgl32.Translate3D(0, 0, -distance)
	axis = common.Normalize3(axis)
	if axis.Len() == 0 {
		return translate
	}
	return translate.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angleDegrees), axis))
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}

// updateProjection recomputes the cached projection. Caller must hold the mutex
// or be the constructor.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}
