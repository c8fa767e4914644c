package renderer

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/go-gl/mathgl/mgl32"
)

type recordingRendererBackendImpl struct {
	mu *sync.Mutex

	streams   map[common.AttributeKind][]float32
	uploads   map[common.AttributeKind]int
	calls     []DrawCall
	frames    int
	presented int
	inFrame   bool
	width     int
	height    int
	clear     common.Color
}

// RecordingRendererBackend draws nothing. It keeps the last uploaded streams and every draw of the
// current or most recent frame, for headless runs and tests.
type RecordingRendererBackend interface {
	RendererBackend

	// Calls returns the draws issued since the last BeginFrame, in order.
	//
	// Returns:
	//   - []DrawCall: the recorded draws
	Calls() []DrawCall

	// Stream returns a copy of the last data uploaded for an attribute stream.
	//
	// Parameters:
	//   - kind: the attribute stream
	//
	// Returns:
	//   - []float32: the stream contents
	Stream(kind common.AttributeKind) []float32

	// Uploads returns how many times an attribute stream was uploaded.
	//
	// Parameters:
	//   - kind: the attribute stream
	//
	// Returns:
	//   - int: the upload count
	Uploads(kind common.AttributeKind) int

	// Frames returns the number of frames begun.
	Frames() int

	// Presented returns the number of frames presented.
	Presented() int

	// Size returns the configured surface size.
	Size() (int, int)
}

var _ RecordingRendererBackend = &recordingRendererBackendImpl{}

func newRecordingRendererBackend() RecordingRendererBackend {
	return &recordingRendererBackendImpl{
		mu:      &sync.Mutex{},
		streams: make(map[common.AttributeKind][]float32),
		uploads: make(map[common.AttributeKind]int),
	}
}

func (b *recordingRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *recordingRendererBackendImpl) SetPresentMode(PresentMode) {}

func (b *recordingRendererBackendImpl) SetClearColor(c common.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear = c
}

func (b *recordingRendererBackendImpl) UploadBuffer(kind common.AttributeKind, data []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.streams[kind] = append(b.streams[kind][:0], data...)
	b.uploads[kind]++
	return nil
}

func (b *recordingRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = b.calls[:0]
	b.frames++
	b.inFrame = true
	return nil
}

func (b *recordingRendererBackendImpl) Draw(model mgl32.Mat4, primitive common.Primitive, first, count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return errors.New("draw outside of a frame")
	}
	b.calls = append(b.calls, DrawCall{Primitive: primitive, First: first, Count: count, Model: model})
	return nil
}

func (b *recordingRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFrame = false
}

func (b *recordingRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presented++
}

func (b *recordingRendererBackendImpl) Release() {}

func (b *recordingRendererBackendImpl) Calls() []DrawCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]DrawCall, len(b.calls))
	copy(out, b.calls)
	return out
}

func (b *recordingRendererBackendImpl) Stream(kind common.AttributeKind) []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]float32(nil), b.streams[kind]...)
}

func (b *recordingRendererBackendImpl) Uploads(kind common.AttributeKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads[kind]
}

func (b *recordingRendererBackendImpl) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

func (b *recordingRendererBackendImpl) Presented() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presented
}

func (b *recordingRendererBackendImpl) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}
