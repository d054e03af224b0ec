package engine

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-spheres/engine/window"
)

// FrameScheduler runs a callback before the next frame. Requests are one-shot: a callback that
// wants another frame must request again. A new request replaces a pending one.
type FrameScheduler interface {
	// RequestFrame schedules fn to run once before the next frame.
	//
	// Parameters:
	//   - fn: the frame callback
	RequestFrame(fn func())
}

// windowScheduler fires the pending request from the window's message loop, so frames run on
// the thread that owns the window and its graphics context.
type windowScheduler struct {
	mu      *sync.Mutex
	pending func()
}

var _ FrameScheduler = &windowScheduler{}

// newWindowScheduler installs a scheduler as the window's update callback.
func newWindowScheduler(w window.Window) *windowScheduler {
	s := &windowScheduler{mu: &sync.Mutex{}}
	w.SetUpdateCallback(s.fire)
	return s
}

func (s *windowScheduler) RequestFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = fn
}

func (s *windowScheduler) fire() {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// ManualScheduler holds frame requests until Fire is called. It drives the engine in tests
// and in headless runs.
type ManualScheduler struct {
	mu       *sync.Mutex
	pending  func()
	requests int
}

var _ FrameScheduler = &ManualScheduler{}

// NewManualScheduler creates a ManualScheduler with nothing pending.
//
// Returns:
//   - *ManualScheduler: the new scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{mu: &sync.Mutex{}}
}

func (s *ManualScheduler) RequestFrame(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = fn
	s.requests++
}

// Fire runs the pending request, if any.
//
// Returns:
//   - bool: true if a callback ran
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a request is waiting to be fired.
func (s *ManualScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Requests returns the total number of RequestFrame calls.
func (s *ManualScheduler) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}
