package model

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorDefaults(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, DefaultLatBands, g.LatBands())
	assert.Equal(t, DefaultLongBands, g.LongBands())
	assert.Equal(t, DefaultPalette, g.Palette())
}

func TestGeneratorGenerate(t *testing.T) {
	g := NewGenerator()
	d := Descriptor{Offset: [3]float32{-50, 25, 0}, Radius: 20, ID: 4}

	m, err := g.Generate(d)
	require.NoError(t, err)

	assert.Equal(t, "sphere-4", m.Name())
	assert.Equal(t, d, m.Descriptor())
	assert.Equal(t, 121, m.VertexCount())
	assert.Equal(t, 600, m.IndexCount())
	assert.Len(t, m.Colors(), m.VertexCount())
	for _, c := range m.Colors() {
		assert.Equal(t, DefaultPalette.ColorFor(4), c)
	}

	assert.Len(t, m.PositionData(), 121*12)
	assert.Len(t, m.ColorData(), 121*16)
	assert.Len(t, m.IndexData(), 600*2)

	first := m.Positions()[0]
	assert.Equal(t, first[0], math.Float32frombits(binary.LittleEndian.Uint32(m.PositionData()[0:])))
	assert.Equal(t, m.Indices()[1], binary.LittleEndian.Uint16(m.IndexData()[2:]))
}

func TestGeneratorOptions(t *testing.T) {
	custom := Palette{{0.1, 0.2, 0.3, 1}}
	g := NewGenerator(WithBands(4, 6), WithPalette(custom))

	m, err := g.Generate(Descriptor{Radius: 1, ID: 9})
	require.NoError(t, err)
	assert.Equal(t, 35, m.VertexCount())
	assert.Equal(t, 144, m.IndexCount())
	assert.Equal(t, custom[0], m.Colors()[0])

	assert.Equal(t, DefaultPalette, NewGenerator(WithPalette(nil)).Palette())
}

func TestGeneratorRejectsBadBands(t *testing.T) {
	_, err := NewGenerator(WithBands(0, 3)).Generate(Descriptor{Radius: 1})
	assert.True(t, errors.Is(err, ErrInvalidBands))
}
