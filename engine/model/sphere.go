package model

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// DefaultLatBands is the number of latitude bands used when none is configured.
	DefaultLatBands = 10

	// DefaultLongBands is the number of longitude bands used when none is configured.
	DefaultLongBands = 10

	// MaxVertices is the largest vertex count addressable by uint16 indices.
	MaxVertices = 1 << 16
)

// ErrInvalidBands is returned when band counts are non-positive or would overflow uint16 indices.
var ErrInvalidBands = errors.New("invalid sphere band counts")

// ValidateBands checks that a sphere with the given band counts can be generated
// and indexed with uint16 indices.
//
// Parameters:
//   - latBands: number of latitude bands (must be >= 1)
//   - longBands: number of longitude bands (must be >= 1)
//
// Returns:
//   - error: an error wrapping ErrInvalidBands, or nil if the counts are usable
func ValidateBands(latBands, longBands int) error {
	if latBands < 1 || longBands < 1 {
		return fmt.Errorf("%w: lat=%d long=%d, both must be at least 1", ErrInvalidBands, latBands, longBands)
	}
	if n := VertexCount(latBands, longBands); n > MaxVertices {
		return fmt.Errorf("%w: lat=%d long=%d yields %d vertices, limit is %d", ErrInvalidBands, latBands, longBands, n, MaxVertices)
	}
	return nil
}

// VertexCount returns the number of vertices generated for the given band counts.
func VertexCount(latBands, longBands int) int {
	return (latBands + 1) * (longBands + 1)
}

// IndexCount returns the number of triangle indices generated for the given band counts.
func IndexCount(latBands, longBands int) int {
	return 6 * latBands * longBands
}

// SpherePositions generates UV-sphere vertex positions ordered row-major by latitude, then longitude.
// SphereIndices depends on this ordering.
//
// Parameters:
//   - offset: the sphere center
//   - radius: the sphere radius
//   - latBands: number of latitude bands
//   - longBands: number of longitude bands
//
// Returns:
//   - [][3]float32: (latBands+1)*(longBands+1) positions
func SpherePositions(offset [3]float32, radius float32, latBands, longBands int) [][3]float32 {
	positions := make([][3]float32, 0, VertexCount(latBands, longBands))
	for lat := 0; lat <= latBands; lat++ {
		theta := float32(lat) * math32.Pi / float32(latBands)
		sinTheta := math32.Sin(theta)
		cosTheta := math32.Cos(theta)

		for long := 0; long <= longBands; long++ {
			phi := float32(long) * 2 * math32.Pi / float32(longBands)
			sinPhi := math32.Sin(phi)
			cosPhi := math32.Cos(phi)

			positions = append(positions, [3]float32{
				offset[0] + radius*cosPhi*sinTheta,
				offset[1] + radius*cosTheta,
				offset[2] + radius*sinPhi*sinTheta,
			})
		}
	}
	return positions
}

// SphereIndices generates two triangles per latitude/longitude quad.
// Rows touching the poles produce zero-area triangles; they are kept so every sphere has the same topology.
//
// Parameters:
//   - latBands: number of latitude bands
//   - longBands: number of longitude bands
//
// Returns:
//   - []uint16: 6*latBands*longBands indices
func SphereIndices(latBands, longBands int) []uint16 {
	indices := make([]uint16, 0, IndexCount(latBands, longBands))
	for lat := 0; lat < latBands; lat++ {
		for long := 0; long < longBands; long++ {
			first := lat*(longBands+1) + long
			second := first + longBands + 1
			indices = append(indices,
				uint16(first), uint16(second), uint16(first+1),
				uint16(second), uint16(second+1), uint16(first+1),
			)
		}
	}
	return indices
}
