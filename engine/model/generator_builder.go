package model

// GeneratorBuilderOption is a functional option for configuring a Generator via NewGenerator.
type GeneratorBuilderOption func(*generator)

// WithBands sets the latitude and longitude band counts.
//
// Parameters:
//   - latBands: number of latitude bands
//   - longBands: number of longitude bands
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the band counts to a generator
func WithBands(latBands, longBands int) GeneratorBuilderOption {
	return func(g *generator) {
		g.latBands = latBands
		g.longBands = longBands
	}
}

// WithPalette replaces the color table. An empty palette is ignored.
//
// Parameters:
//   - p: the palette to use
//
// Returns:
//   - GeneratorBuilderOption: a function that applies the palette to a generator
func WithPalette(p Palette) GeneratorBuilderOption {
	return func(g *generator) {
		if len(p) > 0 {
			g.palette = p
		}
	}
}
