package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxDrawsPerFrame bounds the number of draws a single frame can issue on the GPU backend.
const MaxDrawsPerFrame = 4096

// ErrSnapshotUnsupported is returned by Snapshot on backends that cannot read back a frame.
var ErrSnapshotUnsupported = errors.New("backend does not support snapshots")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	model     mgl32.Mat4
	drawCalls int
	width     int
	height    int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *common.Color
	capacity             int
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API that reduces a frame to whole-stream uploads and ranged draws. The Renderer tracks the
// active model matrix, so callers set it once and issue any number of draws against it. The backend implementation
// is selected at construction, which lets the same scene render to a window, to an image, or into a call log.
type Renderer interface {
	// BackendType returns the type of backend the renderer was created with.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Backend returns the backend implementation, for callers that need backend-specific behavior.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend

	// UploadBuffer replaces the contents of one attribute stream on the backend.
	//
	// Parameters:
	//   - kind: the attribute stream to replace
	//   - data: the full stream contents
	//
	// Returns:
	//   - error: an error if the backend rejects the data
	UploadBuffer(kind common.AttributeKind, data []float32) error

	// SetModelMatrix sets the matrix applied to every following Draw.
	//
	// Parameters:
	//   - m: the model matrix
	SetModelMatrix(m mgl32.Mat4)

	// ModelMatrix returns the matrix applied to the next Draw.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// Draw issues one draw of count vertices starting at first, assembled as primitive.
	// Must be called between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - primitive: how the vertices are assembled
	//   - first: the first vertex of the range
	//   - count: the number of vertices in the range
	//
	// Returns:
	//   - error: an error if the backend cannot draw the range
	Draw(primitive common.Primitive, first, count int) error

	// BeginFrame clears the render target and resets the per-frame draw counter.
	// Must be paired with EndFrame after all Draw invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the render target could not be acquired
	BeginFrame() error

	// EndFrame finishes and submits the frame's draws. Call Present afterward.
	EndFrame()

	// Present presents the finished frame.
	Present()

	// Resize configures the underlying backend to handle a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Size() (int, int)

	// SetPresentMode sets the surface present mode. A call to Resize is required for it to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color frames are cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// DrawCallCount returns the number of draws issued since the last BeginFrame.
	//
	// Returns:
	//   - int: the draw count
	DrawCallCount() int

	// Snapshot writes the last rendered frame to a PNG file. Only the software backend supports it.
	//
	// Parameters:
	//   - path: the output file path
	//
	// Returns:
	//   - error: ErrSnapshotUnsupported, or an error from writing the file
	Snapshot(path string) error

	// Release frees the backend's resources. The renderer must not be used afterward.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type.
// The WebGPU backend needs a window to create its surface from; the software and recording backends ignore the
// window when WithSize is given, and fall back to the window's size otherwise.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - w: the window to render into, may be nil for offscreen backends
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		model:       mgl32.Ident4(),
		capacity:    defaultStreamCapacity,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	if r.width == 0 || r.height == 0 {
		if w == nil {
			panic(fmt.Sprintf("renderer: %s backend needs a window or WithSize", backendType))
		}
		r.width, r.height = w.Width(), w.Height()
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeSoftware:
		r.backend = newSoftwareRendererBackend(r.capacity)
	case BackendTypeRecording:
		r.backend = newRecordingRendererBackend()
	case BackendTypeWGPU:
		fallthrough
	default:
		if w == nil {
			panic("renderer: wgpu backend needs a window")
		}
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, r.capacity)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	r.backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) UploadBuffer(kind common.AttributeKind, data []float32) error {
	if err := r.backend.UploadBuffer(kind, data); err != nil {
		return fmt.Errorf("upload %s stream: %w", kind, err)
	}
	return nil
}

func (r *renderer) SetModelMatrix(m mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.model = m
}

func (r *renderer) ModelMatrix() mgl32.Mat4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

func (r *renderer) Draw(primitive common.Primitive, first, count int) error {
	r.mu.Lock()
	model := r.model
	r.drawCalls++
	r.mu.Unlock()

	if count <= 0 {
		return nil
	}
	return r.backend.Draw(model, primitive, first, count)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	r.drawCalls = 0
	r.mu.Unlock()
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) DrawCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawCalls
}

func (r *renderer) Snapshot(path string) error {
	sb, ok := r.backend.(SoftwareRendererBackend)
	if !ok {
		return fmt.Errorf("%s: %w", r.backendType, ErrSnapshotUnsupported)
	}
	return sb.SavePNG(path)
}

func (r *renderer) Release() {
	r.backend.Release()
}
