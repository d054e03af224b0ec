package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmootherSnapsOnFirstStep(t *testing.T) {
	s := NewSmoother(60, 6, 1)
	assert.Equal(t, float32(12), s.Step(12))
	assert.Equal(t, float32(12), s.Value())
}

func TestSmootherConverges(t *testing.T) {
	s := NewSmoother(0, 6, 1)
	s.Step(0)

	first := s.Step(90)
	assert.Greater(t, first, float32(0))
	assert.Less(t, first, float32(90))

	var last float32
	for range 600 {
		last = s.Step(90)
	}
	assert.InDelta(t, 90, last, 0.01)
}
