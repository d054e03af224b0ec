package input

import (
	"github.com/Carmen-Shannon/oxy-spheres/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDragDivisor converts horizontal cursor travel in pixels into degrees of rotation.
const DefaultDragDivisor = 100

// RotationState is a snapshot of the rotation shared between input handling and rendering.
type RotationState struct {
	// Axis is the rotation axis. Exactly one component is 1, the others are 0.
	Axis mgl32.Vec3

	// AngleDegrees is the accumulated rotation angle in degrees.
	AngleDegrees float32

	// AnchorX is the cursor X position recorded by the last mouse move.
	// Only meaningful when Anchored is true.
	AnchorX float32

	// Anchored reports whether a drag anchor has been recorded since the last reset.
	Anchored bool
}

// controller is the implementation of the Controller interface.
// It is driven from the window's event callbacks on the same thread that renders frames,
// so it carries no lock.
type controller struct {
	state       RotationState
	dragDivisor float32
}

// Controller turns keyboard and mouse events into rotation state.
// X, Y and Z keys select the rotation axis; horizontal mouse movement accumulates the angle.
type Controller interface {
	// KeyDown handles a key press. Any key resets drag anchoring; X, Y and Z also select the axis.
	//
	// Parameters:
	//   - keyCode: the virtual key code (see common.KeyX etc.)
	KeyDown(keyCode uint32)

	// MouseMove handles cursor movement in client-area coordinates.
	// The first move after a reset only records the anchor. Later moves add
	// (x - anchor) / dragDivisor degrees and move the anchor to x.
	//
	// Parameters:
	//   - x, y: cursor position relative to the client area, in pixels (fractional on high-DPI displays)
	MouseMove(x, y float32)

	// Axis returns the current rotation axis.
	//
	// Returns:
	//   - mgl32.Vec3: the unit rotation axis
	Axis() mgl32.Vec3

	// AngleDegrees returns the accumulated rotation angle.
	//
	// Returns:
	//   - float32: the angle in degrees
	AngleDegrees() float32

	// State returns a copy of the full rotation state.
	//
	// Returns:
	//   - RotationState: the current state
	State() RotationState

	// ResetAnchor forces the next mouse move to re-anchor without rotating.
	ResetAnchor()

	// DragDivisor returns the pixels-per-degree divisor applied to mouse travel.
	//
	// Returns:
	//   - float32: the divisor
	DragDivisor() float32
}

var _ Controller = &controller{}

// NewController creates a Controller rotating about +Z at 0 degrees with no drag anchor.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerBuilderOption) Controller {
	c := &controller{
		state: RotationState{
			Axis: mgl32.Vec3{0, 0, 1},
		},
		dragDivisor: DefaultDragDivisor,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controller) KeyDown(keyCode uint32) {
	switch keyCode {
	case common.KeyX:
		c.state.Axis = mgl32.Vec3{1, 0, 0}
	case common.KeyY:
		c.state.Axis = mgl32.Vec3{0, 1, 0}
	case common.KeyZ:
		c.state.Axis = mgl32.Vec3{0, 0, 1}
	}
	c.ResetAnchor()
}

func (c *controller) MouseMove(x, _ float32) {
	if !c.state.Anchored {
		c.state.AnchorX = x
		c.state.Anchored = true
		return
	}
	c.state.AngleDegrees += (x - c.state.AnchorX) / c.dragDivisor
	c.state.AnchorX = x
}

func (c *controller) Axis() mgl32.Vec3 {
	return c.state.Axis
}

func (c *controller) AngleDegrees() float32 {
	return c.state.AngleDegrees
}

func (c *controller) State() RotationState {
	return c.state
}

func (c *controller) ResetAnchor() {
	c.state.Anchored = false
	c.state.AnchorX = 0
}

func (c *controller) DragDivisor() float32 {
	return c.dragDivisor
}
