package camera

import "sync"

const defaultDragSensitivity float32 = 40

// dragController is the implementation of the DragController interface.
type dragController struct {
	mu          *sync.Mutex
	state       State
	dragging    bool
	last        [2]float32
	sensitivity float32
}

// DragController turns pointer gestures into world rotation. Coordinates are normalized device coordinates,
// see ScreenToNDC.
type DragController interface {
	// PointerDown starts a drag at (x, y).
	//
	// Parameters:
	//   - x, y: pointer position
	PointerDown(x, y float32)

	// PointerMove records the point of interest and, while dragging, rotates the world by the distance moved.
	//
	// Parameters:
	//   - x, y: pointer position
	PointerMove(x, y float32)

	// PointerUp ends the drag, folding the last movement into the drag totals.
	//
	// Parameters:
	//   - x, y: pointer position
	PointerUp(x, y float32)

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between PointerDown and PointerUp
	Dragging() bool

	// Sensitivity returns the rotation in degrees per unit of drag.
	//
	// Returns:
	//   - float32: degrees per unit
	Sensitivity() float32
}

var _ DragController = &dragController{}

// NewDragController creates a controller writing into st.
//
// Parameters:
//   - st: the state to rotate
//   - options: functional options to configure the controller
//
// Returns:
//   - DragController: the new controller
func NewDragController(st State, options ...DragControllerOption) DragController {
	dc := &dragController{
		mu:          &sync.Mutex{},
		state:       st,
		sensitivity: defaultDragSensitivity,
	}
	for _, opt := range options {
		opt(dc)
	}
	return dc
}

// ScreenToNDC converts a window position with a top-left origin into normalized device coordinates.
//
// Parameters:
//   - x, y: the pointer position in pixels
//   - width, height: the window size in pixels
//
// Returns:
//   - nx, ny: the position in [-1, 1], +Y up
func ScreenToNDC(x, y float64, width, height int) (nx, ny float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	hw, hh := float64(width)/2, float64(height)/2
	yp := float64(height) - y
	return float32((x - hw) / hw), float32((yp - hh) / hh)
}

func (dc *dragController) PointerDown(x, y float32) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.dragging = true
	dc.last = [2]float32{x, y}
	dc.state.SetPointOfInterest(x, y)
}

func (dc *dragController) PointerMove(x, y float32) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.state.SetPointOfInterest(x, y)
	if !dc.dragging {
		return
	}
	dc.state.AddDrag(x-dc.last[0], y-dc.last[1], dc.sensitivity)
	dc.last = [2]float32{x, y}
}

func (dc *dragController) PointerUp(x, y float32) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if !dc.dragging {
		return
	}
	dc.dragging = false
	dc.state.AddDrag(x-dc.last[0], y-dc.last[1], dc.sensitivity)
}

func (dc *dragController) Dragging() bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.dragging
}

func (dc *dragController) Sensitivity() float32 {
	return dc.sensitivity
}
