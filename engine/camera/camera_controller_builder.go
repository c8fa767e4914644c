package camera

// DragControllerOption is a functional option for configuring a DragController.
type DragControllerOption func(*dragController)

// WithDragSensitivity sets the world rotation per unit of pointer drag.
//
// Parameters:
//   - degreesPerUnit: rotation in degrees per normalized device unit
//
// Returns:
//   - DragControllerOption: functional option to set the sensitivity
func WithDragSensitivity(degreesPerUnit float32) DragControllerOption {
	return func(dc *dragController) {
		if degreesPerUnit != 0 {
			dc.sensitivity = degreesPerUnit
		}
	}
}
