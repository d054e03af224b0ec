package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ClipCorrection remaps OpenGL clip-space depth [-w, w] to the WebGPU range [0, w].
// Pre-multiply it onto a projection built with mgl32.Perspective before uploading to a WGSL shader.
var ClipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// WebGPUProjection converts a GL convention projection matrix into WebGPU clip space.
//
// Parameters:
//   - projection: a projection matrix produced with OpenGL depth conventions
//
// Returns:
//   - mgl32.Mat4: ClipCorrection * projection
func WebGPUProjection(projection mgl32.Mat4) mgl32.Mat4 {
	return ClipCorrection.Mul4(projection)
}

// Mat4ToBytes serializes a column-major matrix into 64 little-endian bytes.
//
// Parameters:
//   - m: the matrix to serialize
//
// Returns:
//   - []byte: the serialized matrix
func Mat4ToBytes(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	PutMat4(buf, m)
	return buf
}

// PutMat4 writes a column-major matrix into dst as 16 little-endian float32 values.
// dst must be at least 64 bytes long.
//
// Parameters:
//   - dst: destination buffer
//   - m: the matrix to write
func PutMat4(dst []byte, m mgl32.Mat4) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(m[i]))
	}
}

// Normalize3 returns v scaled to unit length. A zero vector is returned unchanged.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or v if its length is zero
func Normalize3(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}
