package model

// DefaultPalette is the sphere color table: three shades each of red, green, blue,
// yellow, cyan and magenta, followed by three greys.
var DefaultPalette = Palette{
	{1, 0, 0, 1}, {.75, 0, 0, 1}, {.5, 0, 0, 1},
	{0, 1, 0, 1}, {0, .75, 0, 1}, {0, .5, 0, 1},
	{0, 0, 1, 1}, {0, 0, .75, 1}, {0, 0, .5, 1},
	{1, 1, .3, 1}, {.75, .75, .2, 1}, {.5, .5, .1, 1},
	{.3, 1, 1, 1}, {.2, .75, .75, 1}, {.1, .5, .5, 1},
	{1, .3, 1, 1}, {.75, .2, .75, 1}, {.5, .1, .5, 1},
	{.7, .7, .7, 1}, {.6, .6, .6, 1}, {.5, .5, .5, 1},
}

// Index returns the palette slot used by the sphere with the given id: (3*id) mod len(p).
// Negative ids wrap into range. Returns -1 for an empty palette.
func (p Palette) Index(id int) int {
	n := len(p)
	if n == 0 {
		return -1
	}
	idx := (3 * id) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// ColorFor returns the color assigned to the sphere with the given id.
// An empty palette yields opaque white.
func (p Palette) ColorFor(id int) Color {
	idx := p.Index(id)
	if idx < 0 {
		return Color{1, 1, 1, 1}
	}
	return p[idx]
}

// Fill returns vertexCount copies of the color assigned to id.
//
// Parameters:
//   - id: the sphere id
//   - vertexCount: number of vertices to color
//
// Returns:
//   - []Color: one color per vertex
func (p Palette) Fill(id, vertexCount int) []Color {
	c := p.ColorFor(id)
	colors := make([]Color, vertexCount)
	for i := range colors {
		colors[i] = c
	}
	return colors
}
