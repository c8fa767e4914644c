package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides the desktop surface and the input events the marsh reacts to.
// All callbacks run on the thread that calls ProcessMessages.
type Window interface {
	// SetRefreshCallback sets the function called once per message loop iteration, after events are polled.
	// The callback reports whether it has more frames to draw. When it returns false the loop blocks on
	// events until one arrives, Wake is called, or IdleTimeout passes.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetRefreshCallback(callback func() bool)

	// Wake interrupts an idle wait in ProcessMessages. Safe to call from any goroutine.
	Wake()

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and key repeat events.
	// Escape is handled by the window itself and closes it.
	//
	// Parameters:
	//   - callback: function receiving the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetPointerCallbacks sets the callbacks for the primary (left) button and cursor movement.
	// Positions are in window coordinates with the origin at the top left.
	//
	// Parameters:
	//   - down: called when the button is pressed
	//   - move: called whenever the cursor moves, pressed or not
	//   - up: called when the button is released
	SetPointerCallbacks(down, move, up func(x, y float64))

	// SetTitle replaces the title bar text.
	SetTitle(title string)

	// Title returns the current title bar text.
	Title() string

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until the window is closed.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling the refresh callback each iteration.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// IdleTimeout bounds how long an idle message loop blocks before refreshing again.
const IdleTimeout = 250 * time.Millisecond

// pointer groups the primary button callbacks.
type pointer struct {
	down, move, up func(x, y float64)
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// minWidth/minHeight and maxWidth/maxHeight bound interactive resizing.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// width and height track the framebuffer, which differs from the window size on high-DPI displays.
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// idle is set when the last refresh had nothing more to draw.
	idle bool

	onRefresh func() bool
	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	pointer   pointer
}

var _ Window = &engineWindow{}

// NewWindow creates and opens a Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Marsh",
		minWidth:  320,
		minHeight: 240,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.width < w.minWidth || w.height < w.minHeight {
		panic(fmt.Sprintf("window: %dx%d is below the minimum %dx%d", w.width, w.height, w.minWidth, w.minHeight))
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetRefreshCallback(callback func() bool) {
	w.onRefresh = callback
}

func (w *engineWindow) Wake() {
	platformWake(w)
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetPointerCallbacks(down, move, up func(x, y float64)) {
	w.pointer = pointer{down: down, move: move, up: up}
}

func (w *engineWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for platformProcessMessages(w) {
		busy := true
		if w.onRefresh != nil {
			busy = w.onRefresh()
		}
		w.idle = !busy
		if busy {
			runtime.Gosched()
		}
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
