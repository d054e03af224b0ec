package model

import (
	"github.com/Carmen-Shannon/oxy-spheres/common"
)

// model is the implementation of the Model interface.
type model struct {
	name       string
	descriptor Descriptor
	positions  [][3]float32
	colors     []Color
	indices    []uint16
}

// Model defines the interface for a generated sphere mesh.
// A Model holds CPU-side geometry for one sphere and exposes it as raw bytes for GPU upload.
// Models are produced by a Generator and never mutated afterwards.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Descriptor retrieves the sphere descriptor this model was generated from.
	//
	// Returns:
	//   - Descriptor: the source descriptor
	Descriptor() Descriptor

	// Positions retrieves the vertex positions.
	//
	// Returns:
	//   - [][3]float32: the positions, row-major by latitude then longitude
	Positions() [][3]float32

	// Colors retrieves the per-vertex colors.
	//
	// Returns:
	//   - []Color: one color per vertex
	Colors() []Color

	// Indices retrieves the triangle list indices.
	//
	// Returns:
	//   - []uint16: the index list
	Indices() []uint16

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices, used as the draw count.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// PositionData returns the positions as tightly packed little-endian float32 triples.
	//
	// Returns:
	//   - []byte: the position bytes
	PositionData() []byte

	// ColorData returns the colors as tightly packed little-endian float32 quadruples.
	//
	// Returns:
	//   - []byte: the color bytes
	ColorData() []byte

	// IndexData returns the indices as little-endian uint16 values.
	//
	// Returns:
	//   - []byte: the index bytes
	IndexData() []byte
}

var _ Model = &model{}

// NewModel creates a new Model with the provided options applied.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the configured model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Descriptor() Descriptor {
	return m.descriptor
}

func (m *model) Positions() [][3]float32 {
	return m.positions
}

func (m *model) Colors() []Color {
	return m.colors
}

func (m *model) Indices() []uint16 {
	return m.indices
}

func (m *model) VertexCount() int {
	return len(m.positions)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) PositionData() []byte {
	return common.SliceToBytes(m.positions)
}

func (m *model) ColorData() []byte {
	return common.SliceToBytes(m.colors)
}

func (m *model) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}
