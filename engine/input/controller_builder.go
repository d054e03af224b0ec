package input

import "github.com/go-gl/mathgl/mgl32"

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithAxis sets the initial rotation axis.
//
// Parameters:
//   - axis: the rotation axis
//
// Returns:
//   - ControllerBuilderOption: functional option to set the axis
func WithAxis(axis mgl32.Vec3) ControllerBuilderOption {
	return func(c *controller) {
		c.state.Axis = axis
	}
}

// WithAngle sets the initial rotation angle.
//
// Parameters:
//   - degrees: the starting angle in degrees
//
// Returns:
//   - ControllerBuilderOption: functional option to set the angle
func WithAngle(degrees float32) ControllerBuilderOption {
	return func(c *controller) {
		c.state.AngleDegrees = degrees
	}
}

// WithDragDivisor sets how many pixels of horizontal cursor travel make one degree.
// Non-positive values are ignored.
//
// Parameters:
//   - divisor: pixels per degree
//
// Returns:
//   - ControllerBuilderOption: functional option to set the drag divisor
func WithDragDivisor(divisor float32) ControllerBuilderOption {
	return func(c *controller) {
		if divisor > 0 {
			c.dragDivisor = divisor
		}
	}
}
