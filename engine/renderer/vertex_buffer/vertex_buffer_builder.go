package vertex_buffer

// VertexBufferBuilderOption is a functional option applied to a vertex buffer during construction via NewVertexBuffer.
type VertexBufferBuilderOption func(*vertexBuffer)

// WithCapacity sets the number of vertices each attribute buffer holds.
//
// Parameters:
//   - vertices: the capacity in vertices
//
// Returns:
//   - VertexBufferBuilderOption: a function that applies the capacity option to a vertex buffer
func WithCapacity(vertices int) VertexBufferBuilderOption {
	return func(vb *vertexBuffer) {
		vb.capacity = vertices
	}
}

// WithLabel sets the label used as the log prefix for this buffer.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - VertexBufferBuilderOption: a function that applies the label option to a vertex buffer
func WithLabel(label string) VertexBufferBuilderOption {
	return func(vb *vertexBuffer) {
		vb.label = label
	}
}
