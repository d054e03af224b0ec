package camera

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-spheres/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUTransformUniform is the GPU-aligned representation of the transform uniform buffer.
// Matches the WGSL Transforms struct in the sphere shader.
// Size: 128 bytes.
type GPUTransformUniform struct {
	Projection mgl32.Mat4 // offset  0: projection matrix (mat4x4<f32>)
	ModelView  mgl32.Mat4 // offset 64: model-view matrix (mat4x4<f32>)
}

// Size returns the size of the GPUTransformUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUTransformUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTransformUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUTransformUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	common.PutMat4(buf[0:], g.Projection)
	common.PutMat4(buf[64:], g.ModelView)
	return buf
}
