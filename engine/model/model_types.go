package model

// Descriptor describes a single sphere in the field.
// Descriptors are immutable once handed to the scene.
type Descriptor struct {
	// Offset is the sphere center in model space.
	Offset [3]float32

	// Radius is the sphere radius. A zero radius collapses every vertex onto Offset.
	Radius float32

	// ID is the ordinal position of the sphere in the field and selects its palette color.
	ID int
}

// Color is a linear RGBA color with components in [0, 1].
type Color [4]float32

// Palette is an ordered, fixed table of sphere colors.
type Palette []Color
