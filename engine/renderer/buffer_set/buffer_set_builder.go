package buffer_set

// BufferSetOption is a functional option used to configure a BufferSet during construction.
type BufferSetOption func(*bufferSet)

// WithBuffers sets pre-created position, color and index buffers.
//
// Parameters:
//   - position: the position buffer
//   - color: the color buffer
//   - index: the index buffer
//   - indexCount: the number of indices in the index buffer
//
// Returns:
//   - BufferSetOption: a function that sets the buffers on the set
func WithBuffers(position, color, index any, indexCount int) BufferSetOption {
	return func(s *bufferSet) {
		s.positionBuffer = position
		s.colorBuffer = color
		s.indexBuffer = index
		s.indexCount = indexCount
	}
}
