package shader

import "github.com/cogentcore/webgpu/wgpu"

// Variable is a GLSL attribute or uniform declaration.
type Variable struct {
	Name string
	Type string
}

// Components returns the number of float components of the variable's type,
// or 0 when the type is not a float scalar or vector.
func (v Variable) Components() int32 {
	switch v.Type {
	case "float":
		return 1
	case "vec2":
		return 2
	case "vec3":
		return 3
	case "vec4":
		return 4
	default:
		return 0
	}
}

// vertexFormatInfo pairs a wgpu vertex format with its size in bytes.
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// wgslTypeLayout is the size and alignment of a host-shareable WGSL type.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField is a single member of a WGSL struct.
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct is a WGSL struct block.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// minLocation returns the lowest @location of the struct, or -1 when it has none.
func (ps parsedStruct) minLocation() int {
	lowest := -1
	for _, f := range ps.fields {
		if f.location >= 0 && (lowest < 0 || f.location < lowest) {
			lowest = f.location
		}
	}
	return lowest
}
