package buffer_set

// bufferSet is the unexported implementation of BufferSet.
type bufferSet struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU resources populated by the Renderer in InitBufferSet and
	// released in Release. Their concrete type depends on the backend.

	positionBuffer any
	colorBuffer    any
	indexBuffer    any

	// indexCount is the number of indices the Renderer draws for this set.
	indexCount int
}

// BufferSet holds the GPU-resident position, color and index buffers of one mesh.
// A BufferSet is filled once by Renderer.InitBufferSet and never mutated afterwards.
//
// Usage pattern:
//  1. Scene creates a BufferSet per sphere with NewBufferSet
//  2. Scene calls Renderer.InitBufferSet(set, model) to create and upload the buffers
//  3. Scene calls Renderer.DrawCall(pipelineKey, set) every frame
//  4. Scene calls Release at shutdown
type BufferSet interface {
	// Release releases every buffer that supports releasing and resets the set.
	Release()

	// Label returns the debug label for this set.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// PositionBuffer returns the backend vertex buffer holding vec3 positions, nil before upload.
	//
	// Returns:
	//   - any: the backend buffer object
	PositionBuffer() any

	// ColorBuffer returns the backend vertex buffer holding RGBA colors, nil before upload.
	//
	// Returns:
	//   - any: the backend buffer object
	ColorBuffer() any

	// IndexBuffer returns the backend index buffer holding uint16 triangle indices, nil before upload.
	//
	// Returns:
	//   - any: the backend buffer object
	IndexBuffer() any

	// IndexCount returns the number of indices uploaded to the index buffer.
	//
	// Returns:
	//   - int: the index count used for indexed draws
	IndexCount() int

	// Initialized reports whether all three buffers have been uploaded.
	//
	// Returns:
	//   - bool: true once the set can be drawn
	Initialized() bool

	// SetPositionBuffer stores the backend position buffer.
	//
	// Parameters:
	//   - buf: the backend buffer object
	SetPositionBuffer(buf any)

	// SetColorBuffer stores the backend color buffer.
	//
	// Parameters:
	//   - buf: the backend buffer object
	SetColorBuffer(buf any)

	// SetIndexBuffer stores the backend index buffer.
	//
	// Parameters:
	//   - buf: the backend buffer object
	SetIndexBuffer(buf any)

	// SetIndexCount stores the number of indices in the index buffer.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

var _ BufferSet = &bufferSet{}

// NewBufferSet creates an empty BufferSet with the given debug label.
//
// Parameters:
//   - label: a debug label used for GPU object labels
//   - options: functional options to configure the set
//
// Returns:
//   - BufferSet: the new set
func NewBufferSet(label string, options ...BufferSetOption) BufferSet {
	s := &bufferSet{label: label}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *bufferSet) Label() string {
	return s.label
}

func (s *bufferSet) PositionBuffer() any {
	return s.positionBuffer
}

func (s *bufferSet) ColorBuffer() any {
	return s.colorBuffer
}

func (s *bufferSet) IndexBuffer() any {
	return s.indexBuffer
}

func (s *bufferSet) IndexCount() int {
	return s.indexCount
}

func (s *bufferSet) Initialized() bool {
	return s.positionBuffer != nil && s.colorBuffer != nil && s.indexBuffer != nil
}

func (s *bufferSet) SetPositionBuffer(buf any) {
	s.positionBuffer = buf
}

func (s *bufferSet) SetColorBuffer(buf any) {
	s.colorBuffer = buf
}

func (s *bufferSet) SetIndexBuffer(buf any) {
	s.indexBuffer = buf
}

func (s *bufferSet) SetIndexCount(count int) {
	s.indexCount = count
}

func (s *bufferSet) Release() {
	for _, buf := range []any{s.positionBuffer, s.colorBuffer, s.indexBuffer} {
		if r, ok := buf.(interface{ Release() }); ok {
			r.Release()
		}
	}
	s.positionBuffer = nil
	s.colorBuffer = nil
	s.indexBuffer = nil
	s.indexCount = 0
}
