package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithDescriptor is an option builder that records the sphere descriptor the Model was built from.
//
// Parameters:
//   - d: the sphere descriptor
//
// Returns:
//   - ModelBuilderOption: a function that applies the descriptor option to a model
func WithDescriptor(d Descriptor) ModelBuilderOption {
	return func(m *model) {
		m.descriptor = d
	}
}

// WithPositions is an option builder that sets the vertex positions of the Model.
//
// Parameters:
//   - positions: the vertex positions
//
// Returns:
//   - ModelBuilderOption: a function that applies the positions option to a model
func WithPositions(positions [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.positions = positions
	}
}

// WithColors is an option builder that sets the per-vertex colors of the Model.
//
// Parameters:
//   - colors: the vertex colors
//
// Returns:
//   - ModelBuilderOption: a function that applies the colors option to a model
func WithColors(colors []Color) ModelBuilderOption {
	return func(m *model) {
		m.colors = colors
	}
}

// WithIndices is an option builder that sets the triangle indices of the Model.
//
// Parameters:
//   - indices: the triangle list indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the indices option to a model
func WithIndices(indices []uint16) ModelBuilderOption {
	return func(m *model) {
		m.indices = indices
	}
}
