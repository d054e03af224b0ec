package input

import "github.com/charmbracelet/harmonica"

// Smoother eases a displayed angle toward the controller's target angle with a damped spring.
// Step is called once per rendered frame.
type Smoother struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	primed   bool
}

// NewSmoother creates a Smoother stepping at the given frame rate.
//
// Parameters:
//   - fps: expected frames per second (values <= 0 use 60)
//   - frequency: spring angular frequency; higher settles faster
//   - damping: damping ratio; 1 is critically damped, below 1 overshoots
//
// Returns:
//   - *Smoother: the new smoother
func NewSmoother(fps int, frequency, damping float64) *Smoother {
	if fps <= 0 {
		fps = 60
	}
	return &Smoother{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Step advances the spring one frame toward target and returns the eased angle.
// The first call snaps to target.
//
// Parameters:
//   - target: the angle the spring is pulled toward, in degrees
//
// Returns:
//   - float32: the eased angle in degrees
func (s *Smoother) Step(target float32) float32 {
	if !s.primed {
		s.position = float64(target)
		s.velocity = 0
		s.primed = true
		return target
	}
	s.position, s.velocity = s.spring.Update(s.position, s.velocity, float64(target))
	return float32(s.position)
}

// Value returns the most recent eased angle.
func (s *Smoother) Value() float32 {
	return float32(s.position)
}
