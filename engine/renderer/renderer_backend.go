package renderer

import (
	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend. It requires a window.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeSoftware selects the CPU rasterizer, which renders into an image that can be saved as PNG.
	BackendTypeSoftware

	// BackendTypeRecording selects a backend that draws nothing and records every call.
	BackendTypeRecording
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeSoftware:
		return "software"
	case BackendTypeRecording:
		return "recording"
	default:
		return "unknown"
	}
}

// ParseBackendType maps a backend name as written in config files onto a RendererBackendType.
//
// Parameters:
//   - name: "wgpu", "software" or "recording"
//
// Returns:
//   - RendererBackendType: the matching backend type
//   - bool: false if the name is not recognized
func ParseBackendType(name string) (RendererBackendType, bool) {
	for _, t := range []RendererBackendType{BackendTypeWGPU, BackendTypeSoftware, BackendTypeRecording} {
		if t.String() == name {
			return t, true
		}
	}
	return BackendTypeWGPU, false
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// DrawCall is one draw issued through a backend: a vertex range, how it is assembled, and the
// model matrix that was active when it was issued.
type DrawCall struct {
	Primitive common.Primitive
	First     int
	Count     int
	Model     mgl32.Mat4
}

// RendererBackend is the interface every backend implementation satisfies.
// Vertex data is uploaded as whole attribute streams; draws reference vertex ranges inside them.
type RendererBackend interface {
	// ConfigureSurface prepares the render target for a new size.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display. Offscreen backends ignore it.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to in BeginFrame.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// UploadBuffer replaces the backend's copy of one attribute stream.
	//
	// Parameters:
	//   - kind: the attribute stream
	//   - data: the full stream contents
	//
	// Returns:
	//   - error: an error if the data does not fit the stream
	UploadBuffer(kind common.AttributeKind, data []float32) error

	// BeginFrame clears the render target and starts recording draws.
	// Must be paired with EndFrame after all Draw invocations.
	//
	// Returns:
	//   - error: an error if the render target could not be acquired
	BeginFrame() error

	// Draw encodes one draw of count vertices starting at first, transformed by model.
	//
	// Parameters:
	//   - model: the model matrix for the draw
	//   - primitive: how the vertices are assembled
	//   - first: the first vertex of the range
	//   - count: the number of vertices in the range
	//
	// Returns:
	//   - error: an error if no frame is in progress or the range cannot be drawn
	Draw(model mgl32.Mat4, primitive common.Primitive, first, count int) error

	// EndFrame finishes the frame's draws. Does not present; call Present afterward.
	EndFrame()

	// Present shows the finished frame.
	Present()

	// Release frees every resource held by the backend.
	Release()
}
