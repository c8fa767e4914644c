package input

import "github.com/Carmen-Shannon/oxy-marsh/engine/camera"

// HandlerBuilderOption is a functional option for configuring a Handler.
type HandlerBuilderOption func(h *handler)

// WithDragController replaces the default drag controller built on the scene's state.
//
// Parameters:
//   - dc: the drag controller
//
// Returns:
//   - HandlerBuilderOption: option function to apply
func WithDragController(dc camera.DragController) HandlerBuilderOption {
	return func(h *handler) {
		h.drag = dc
	}
}

// WithSurfaceSize sets the function reporting the pixel size used to map pointer coordinates.
// Defaults to the scene renderer's size.
//
// Parameters:
//   - size: returns width and height in pixels
//
// Returns:
//   - HandlerBuilderOption: option function to apply
func WithSurfaceSize(size func() (int, int)) HandlerBuilderOption {
	return func(h *handler) {
		if size != nil {
			h.size = size
		}
	}
}
