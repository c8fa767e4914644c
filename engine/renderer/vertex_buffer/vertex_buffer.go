// Package vertex_buffer assembles generated vertex streams into fixed-capacity buffers, one per attribute kind,
// and keeps the rendering backend's copy of each buffer in sync.
package vertex_buffer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
)

// DefaultCapacity is the number of vertices each attribute buffer holds when WithCapacity is not given.
const DefaultCapacity = 8192

// Uploader receives the full contents of an attribute buffer whenever it changes.
type Uploader interface {
	UploadBuffer(kind common.AttributeKind, data []float32) error
}

// vertexBuffer is the implementation of the VertexBuffer interface.
type vertexBuffer struct {
	mu       *sync.Mutex
	label    string
	uploader Uploader
	capacity int

	data    map[common.AttributeKind][]float32
	cursors map[common.AttributeKind]int
}

// VertexBuffer is a set of pre-allocated attribute buffers filled by appending.
// Buffers never grow: writes past the end wrap around to the start, overwriting older vertices.
type VertexBuffer interface {
	// Append copies data into the buffer for kind at that buffer's write cursor, advances the cursor, and uploads
	// the whole buffer. A write that runs past capacity logs a warning and wraps to the start.
	//
	// Parameters:
	//   - kind: the attribute buffer to write
	//   - data: the attribute values, a whole number of vertices long
	//
	// Returns:
	//   - int: the vertex offset the data was written at
	//   - error: an error if data is not a whole number of vertices or the upload fails
	Append(kind common.AttributeKind, data []float32) (int, error)

	// Cursor returns the next write position, in vertices, of the buffer for kind.
	//
	// Parameters:
	//   - kind: the attribute buffer
	//
	// Returns:
	//   - int: the cursor
	Cursor(kind common.AttributeKind) int

	// Capacity returns the number of vertices every attribute buffer holds.
	//
	// Returns:
	//   - int: the capacity
	Capacity() int

	// Data returns the backing slice of the buffer for kind. Callers must not modify it.
	//
	// Parameters:
	//   - kind: the attribute buffer
	//
	// Returns:
	//   - []float32: the buffer contents
	Data(kind common.AttributeKind) []float32

	// Upload sends every attribute buffer to the uploader.
	//
	// Returns:
	//   - error: the first upload error
	Upload() error

	// Wipe zeroes every buffer, resets every cursor, and uploads all buffers.
	//
	// Returns:
	//   - error: the first upload error
	Wipe() error

	// Label returns the debug label used in log output.
	Label() string
}

var _ VertexBuffer = &vertexBuffer{}

// NewVertexBuffer allocates one buffer per attribute kind at full capacity.
// Nothing is uploaded until the first Append, Upload or Wipe.
//
// Parameters:
//   - uploader: the receiver of buffer contents, usually a renderer.Renderer
//   - options: variadic list of VertexBufferBuilderOption functions
//
// Returns:
//   - VertexBuffer: the new vertex buffer
func NewVertexBuffer(uploader Uploader, options ...VertexBufferBuilderOption) VertexBuffer {
	vb := &vertexBuffer{
		mu:       &sync.Mutex{},
		label:    "VertexBuffer",
		uploader: uploader,
		capacity: DefaultCapacity,
		data:     make(map[common.AttributeKind][]float32, len(common.AttributeKinds)),
		cursors:  make(map[common.AttributeKind]int, len(common.AttributeKinds)),
	}
	for _, opt := range options {
		opt(vb)
	}
	if vb.capacity <= 0 {
		panic(fmt.Sprintf("vertex buffer %q: capacity must be positive, got %d", vb.label, vb.capacity))
	}
	for _, kind := range common.AttributeKinds {
		vb.data[kind] = make([]float32, vb.capacity*kind.Components())
	}
	return vb
}

func (vb *vertexBuffer) Append(kind common.AttributeKind, data []float32) (int, error) {
	vb.mu.Lock()
	defer vb.mu.Unlock()

	buf, ok := vb.data[kind]
	if !ok {
		return 0, fmt.Errorf("unknown attribute kind %s", kind)
	}
	comps := kind.Components()
	if len(data)%comps != 0 {
		return 0, fmt.Errorf("%s data of %d floats is not a whole number of vertices", kind, len(data))
	}

	start := vb.cursors[kind]
	vertices := len(data) / comps
	if start+vertices > vb.capacity {
		log.Printf("[%s] %s write of %d vertices at %d exceeds capacity %d, wrapping to start", vb.label, kind, vertices, start, vb.capacity)
	}

	offset := start * comps
	for len(data) > 0 {
		n := copy(buf[offset:], data)
		data = data[n:]
		offset = (offset + n) % len(buf)
	}
	vb.cursors[kind] = (start + vertices) % vb.capacity

	if err := vb.upload(kind); err != nil {
		return start, err
	}
	return start, nil
}

func (vb *vertexBuffer) Cursor(kind common.AttributeKind) int {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.cursors[kind]
}

func (vb *vertexBuffer) Capacity() int {
	return vb.capacity
}

func (vb *vertexBuffer) Data(kind common.AttributeKind) []float32 {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.data[kind]
}

func (vb *vertexBuffer) Upload() error {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.uploadAll()
}

func (vb *vertexBuffer) Wipe() error {
	vb.mu.Lock()
	defer vb.mu.Unlock()

	for _, kind := range common.AttributeKinds {
		clear(vb.data[kind])
		vb.cursors[kind] = 0
	}
	return vb.uploadAll()
}

func (vb *vertexBuffer) Label() string {
	return vb.label
}

func (vb *vertexBuffer) uploadAll() error {
	for _, kind := range common.AttributeKinds {
		if err := vb.upload(kind); err != nil {
			return err
		}
	}
	return nil
}

func (vb *vertexBuffer) upload(kind common.AttributeKind) error {
	if vb.uploader == nil {
		return nil
	}
	if err := vb.uploader.UploadBuffer(kind, vb.data[kind]); err != nil {
		return fmt.Errorf("%s: upload %s: %w", vb.label, kind, err)
	}
	return nil
}
