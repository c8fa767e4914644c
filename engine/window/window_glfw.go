package window

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window *glfw.Window
	closed atomic.Bool
}

func glfwOf(w *engineWindow) (*glfwWindow, bool) {
	gw, ok := w.internalWindow.(*glfwWindow)
	return gw, ok && !gw.closed.Load()
}

// newPlatformWindow opens the GLFW window without a client API, since WebGPU owns the surface,
// and routes GLFW callbacks to the engineWindow's handlers.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	// GLFW must stay on the thread that created it.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	w.internalWindow = &glfwWindow{window: win}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			win.SetShouldClose(true)
			return
		}
		if w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := win.GetCursorPos()
		switch {
		case action == glfw.Press && w.pointer.down != nil:
			w.pointer.down(x, y)
		case action == glfw.Release && w.pointer.up != nil:
			w.pointer.up(x, y)
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.pointer.move != nil {
			w.pointer.move(x, y)
		}
	})

	// The framebuffer size is what the surface needs; on Retina displays it differs from the window size.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil && width > 0 && height > 0 {
			w.onResize(width, height)
		}
	})

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// platformGetSurfaceDescriptor creates a wgpu.SurfaceDescriptor through the wgpuglfw bridge.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := glfwOf(w)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformSetTitle(w *engineWindow, title string) {
	if gw, ok := glfwOf(w); ok {
		gw.window.SetTitle(title)
	}
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := glfwOf(w)
	return ok && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates GLFW. A second call returns an error.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := glfwOf(w)
	if !ok {
		return errors.New("window is not open")
	}
	gw.closed.Store(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events. An idle window blocks until an event arrives
// or IdleTimeout passes.
//
// Returns:
//   - bool: true while the window stays open
func platformProcessMessages(w *engineWindow) bool {
	if _, ok := glfwOf(w); !ok {
		return false
	}
	if w.idle {
		glfw.WaitEventsTimeout(IdleTimeout.Seconds())
	} else {
		glfw.PollEvents()
	}
	return platformIsRunningCheck(w)
}

// platformWake posts an empty event so a blocked WaitEventsTimeout returns.
func platformWake(w *engineWindow) {
	if _, ok := glfwOf(w); ok {
		glfw.PostEmptyEvent()
	}
}
