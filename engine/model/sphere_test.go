package model

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereCounts(t *testing.T) {
	tests := []struct {
		lat, long int
	}{
		{1, 1},
		{10, 10},
		{3, 7},
		{32, 16},
	}
	for _, tt := range tests {
		positions := SpherePositions([3]float32{}, 1, tt.lat, tt.long)
		indices := SphereIndices(tt.lat, tt.long)

		assert.Len(t, positions, (tt.lat+1)*(tt.long+1), "lat=%d long=%d", tt.lat, tt.long)
		assert.Len(t, indices, 6*tt.lat*tt.long, "lat=%d long=%d", tt.lat, tt.long)
		assert.Equal(t, VertexCount(tt.lat, tt.long), len(positions))
		assert.Equal(t, IndexCount(tt.lat, tt.long), len(indices))

		for _, idx := range indices {
			require.Less(t, int(idx), len(positions))
		}
	}
}

func TestSphereDefaultBandsDrawSixHundredIndices(t *testing.T) {
	assert.Len(t, SphereIndices(DefaultLatBands, DefaultLongBands), 600)
	assert.Len(t, SpherePositions([3]float32{}, 1, DefaultLatBands, DefaultLongBands), 121)
}

func TestSphereZeroRadiusCollapsesToOffset(t *testing.T) {
	offset := [3]float32{12, -4, 7.5}
	for _, p := range SpherePositions(offset, 0, 10, 10) {
		assert.Equal(t, offset, p)
	}
}

func TestSphereUnitNorm(t *testing.T) {
	for _, p := range SpherePositions([3]float32{}, 1, 10, 10) {
		norm := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		assert.InDelta(t, 1.0, norm, 1e-5)
	}
}

func TestSpherePoles(t *testing.T) {
	positions := SpherePositions([3]float32{0, 10, 0}, 2, 4, 4)
	assert.InDelta(t, 12, positions[0][1], 1e-5)
	assert.InDelta(t, 8, positions[len(positions)-1][1], 1e-5)
}

func TestSphereIndicesFirstQuad(t *testing.T) {
	indices := SphereIndices(10, 10)
	// first = 0, second = 11
	assert.Equal(t, []uint16{0, 11, 1, 11, 12, 1}, indices[:6])
	// lat=1, long=2: first = 13, second = 24
	assert.Equal(t, []uint16{13, 24, 14, 24, 25, 14}, indices[6*12:6*13])
}

func TestValidateBands(t *testing.T) {
	tests := []struct {
		name      string
		lat, long int
		wantErr   bool
	}{
		{"default", 10, 10, false},
		{"minimal", 1, 1, false},
		{"zero lat", 0, 10, true},
		{"negative long", 10, -1, true},
		{"exactly uint16", 255, 255, false},
		{"overflow", 256, 256, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBands(tt.lat, tt.long)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidBands))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
