package model

import (
	"fmt"
)

// generator is the implementation of the Generator interface.
type generator struct {
	latBands  int
	longBands int
	palette   Palette
}

// Generator builds sphere Models from Descriptors.
// All spheres produced by one Generator share the same band counts and therefore the same topology.
type Generator interface {
	// Generate builds the positions, colors and indices for a single sphere.
	//
	// Parameters:
	//   - d: the sphere descriptor
	//
	// Returns:
	//   - Model: the generated model
	//   - error: an error wrapping ErrInvalidBands if the generator's band counts are unusable
	Generate(d Descriptor) (Model, error)

	// LatBands returns the configured latitude band count.
	LatBands() int

	// LongBands returns the configured longitude band count.
	LongBands() int

	// Palette returns the color table used for color assignment.
	Palette() Palette
}

var _ Generator = &generator{}

// NewGenerator creates a Generator with 10x10 bands and the default palette, then applies options.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - Generator: the configured generator
func NewGenerator(options ...GeneratorBuilderOption) Generator {
	g := &generator{
		latBands:  DefaultLatBands,
		longBands: DefaultLongBands,
		palette:   DefaultPalette,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *generator) Generate(d Descriptor) (Model, error) {
	if err := ValidateBands(g.latBands, g.longBands); err != nil {
		return nil, err
	}

	positions := SpherePositions(d.Offset, d.Radius, g.latBands, g.longBands)
	return NewModel(
		WithName(fmt.Sprintf("sphere-%d", d.ID)),
		WithDescriptor(d),
		WithPositions(positions),
		WithColors(g.palette.Fill(d.ID, len(positions))),
		WithIndices(SphereIndices(g.latBands, g.longBands)),
	), nil
}

func (g *generator) LatBands() int {
	return g.latBands
}

func (g *generator) LongBands() int {
	return g.longBands
}

func (g *generator) Palette() Palette {
	return g.palette
}
