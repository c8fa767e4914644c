package bind_group_provider

import (
	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/go-gl/mathgl/mgl32"
)

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// MatrixWrites lays matrices out one per slot of stride bytes, starting at offset 0.
//
// Parameters:
//   - provider: the provider owning the target buffer
//   - binding: the binding of the target buffer
//   - stride: the byte distance between consecutive slots
//   - matrices: the matrices to write, in slot order
//
// Returns:
//   - []BufferWrite: one write per matrix
func MatrixWrites(provider BindGroupProvider, binding int, stride uint64, matrices []mgl32.Mat4) []BufferWrite {
	writes := make([]BufferWrite, len(matrices))
	for i := range matrices {
		writes[i] = BufferWrite{
			Provider: provider,
			Binding:  binding,
			Offset:   uint64(i) * stride,
			Data:     common.SliceToBytes(matrices[i][:]),
		}
	}
	return writes
}
