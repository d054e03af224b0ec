package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func TestDefaultPaletteShape(t *testing.T) {
	assert.Len(t, DefaultPalette, 21)
	for i, c := range DefaultPalette {
		assert.Equal(t, float32(1), c[3], "entry %d should be opaque", i)
	}
}

func TestPaletteIndex(t *testing.T) {
	p := DefaultPalette
	tests := []struct {
		id   int
		want int
	}{
		{0, 0},
		{1, 3},
		{6, 18},
		{7, 0},
		{8, 3},
		{-1, 18},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Index(tt.id), "id=%d", tt.id)
	}
	assert.Equal(t, -1, Palette{}.Index(4))
}

func TestPalettePeriodicity(t *testing.T) {
	palettes := []Palette{
		DefaultPalette,
		DefaultPalette[:4],
		DefaultPalette[:9],
	}
	for _, p := range palettes {
		period := len(p) / gcd(3, len(p))
		for id := range 40 {
			assert.Equal(t, p.ColorFor(id), p.ColorFor(id+period), "P=%d id=%d", len(p), id)
		}
	}
}

func TestPaletteFill(t *testing.T) {
	colors := DefaultPalette.Fill(2, 121)
	assert.Len(t, colors, 121)
	for _, c := range colors {
		assert.Equal(t, DefaultPalette[6], c)
	}
	assert.Equal(t, Color{1, 1, 1, 1}, Palette{}.ColorFor(3))
}
