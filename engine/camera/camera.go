// Package camera holds the world pose of the marsh scene and the controls that move it.
// The scene has no perspective camera: the pose is applied at the root of the transform stack
// and the idle spin turns the whole world about +Y.
package camera

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/transform"
)

const (
	defaultSpinRate  float32 = 45
	defaultNudgeStep float32 = 0.01
	defaultScaleStep float32 = 0.05
	defaultMinScale  float32 = 0.05
	defaultMaxScale  float32 = 2.5
)

// state is the implementation of the State interface.
type state struct {
	mu *sync.Mutex

	position [3]float32
	rotation [3]float32
	scale    [3]float32
	drag     [2]float32
	pointer  [2]float32

	spin *animator.WrappingOscillator

	sway        bool
	help        bool
	panel       bool
	showGrid    bool
	lowFidelity bool

	nudgeStep float32
	scaleStep float32
	minScale  float32
	maxScale  float32
}

// State is the single per-scene record of the world pose and display toggles.
// Input handlers and the control panel write it between frames; the scene reads it once per frame.
type State interface {
	// Position returns the world translation.
	//
	// Returns:
	//   - x, y, z: translation components
	Position() (x, y, z float32)

	// SetPosition sets the world translation.
	//
	// Parameters:
	//   - x, y, z: translation components
	SetPosition(x, y, z float32)

	// Rotation returns the world rotation in degrees about X, Y and Z.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// SetRotation sets the world rotation in degrees.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// Scale returns the world scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// SetScale sets the world scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// Nudge moves the world by a number of nudge steps along X and Y.
	//
	// Parameters:
	//   - stepsX, stepsY: signed step counts
	Nudge(stepsX, stepsY float32)

	// NudgeScale grows or shrinks every scale axis by one step, clamped to the scale bounds.
	//
	// Parameters:
	//   - steps: signed step count
	NudgeScale(steps float32)

	// DragTotals returns the accumulated pointer drag in normalized device units.
	//
	// Returns:
	//   - dx, dy: the drag totals
	DragTotals() (dx, dy float32)

	// AddDrag accumulates pointer drag and derives the X and Y world rotation from the totals.
	//
	// Parameters:
	//   - dx, dy: drag delta in normalized device units
	//   - degreesPerUnit: rotation per unit of drag
	AddDrag(dx, dy, degreesPerUnit float32)

	// PointOfInterest returns the last pointer position in normalized device coordinates.
	//
	// Returns:
	//   - x, y: the pointer position
	PointOfInterest() (x, y float32)

	// SetPointOfInterest records the pointer position.
	//
	// Parameters:
	//   - x, y: pointer position in normalized device coordinates
	SetPointOfInterest(x, y float32)

	// Spin returns the idle spin angle in degrees.
	//
	// Returns:
	//   - float32: the spin angle in (-180, 180]
	Spin() float32

	// SpinOscillator returns the oscillator driving Spin.
	//
	// Returns:
	//   - *animator.WrappingOscillator: the spin oscillator
	SpinOscillator() *animator.WrappingOscillator

	// Update advances the idle spin to now.
	//
	// Parameters:
	//   - now: the frame timestamp
	Update(now time.Time)

	SwayEnabled() bool
	SetSwayEnabled(enabled bool)
	HelpVisible() bool
	ToggleHelp() bool
	PanelOpen() bool
	SetPanelOpen(open bool)
	ShowGrid() bool
	SetShowGrid(show bool)
	LowFidelity() bool
	SetLowFidelity(low bool)

	// Reset returns position, rotation, scale and drag totals to their defaults. Toggles are kept.
	Reset()

	// Apply issues the root transform of a frame: aspect correction, then translate, rotate X, Y, Z,
	// idle spin and scale, each post-multiplied onto s.
	//
	// Parameters:
	//   - s: the transform stack
	//   - width, height: the surface size in pixels
	Apply(s transform.Stack, width, height int)

	// Billboard undoes the world rotation and idle spin on s in reverse order so the next draw faces the viewer.
	//
	// Parameters:
	//   - s: the transform stack
	Billboard(s transform.Stack)
}

var _ State = &state{}

// NewState creates a State at the default pose, with sway on and a spin oscillator stamped at now.
//
// Parameters:
//   - now: the spin oscillator's initial timestamp
//   - options: functional options to configure the state
//
// Returns:
//   - State: the new state
func NewState(now time.Time, options ...StateBuilderOption) State {
	st := &state{
		mu:        &sync.Mutex{},
		scale:     [3]float32{1, 1, 1},
		spin:      animator.NewWrappingOscillator(0, defaultSpinRate, now),
		sway:      true,
		nudgeStep: defaultNudgeStep,
		scaleStep: defaultScaleStep,
		minScale:  defaultMinScale,
		maxScale:  defaultMaxScale,
	}
	for _, opt := range options {
		opt(st)
	}
	return st
}

func (st *state) Position() (x, y, z float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.position[0], st.position[1], st.position[2]
}

func (st *state) SetPosition(x, y, z float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.position = [3]float32{x, y, z}
}

func (st *state) Rotation() (rx, ry, rz float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rotation[0], st.rotation[1], st.rotation[2]
}

func (st *state) SetRotation(rx, ry, rz float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.rotation = [3]float32{rx, ry, rz}
}

func (st *state) Scale() (sx, sy, sz float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.scale[0], st.scale[1], st.scale[2]
}

func (st *state) SetScale(sx, sy, sz float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.scale = [3]float32{sx, sy, sz}
}

func (st *state) Nudge(stepsX, stepsY float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.position[0] += stepsX * st.nudgeStep
	st.position[1] += stepsY * st.nudgeStep
}

func (st *state) NudgeScale(steps float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range st.scale {
		st.scale[i] = common.Clamp(st.scale[i]+steps*st.scaleStep, st.minScale, st.maxScale)
	}
}

func (st *state) DragTotals() (dx, dy float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.drag[0], st.drag[1]
}

func (st *state) AddDrag(dx, dy, degreesPerUnit float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.drag[0] += dx
	st.drag[1] += dy
	st.rotation[0] = common.ModDeg(st.drag[1] * degreesPerUnit)
	st.rotation[1] = common.ModDeg(st.drag[0] * -degreesPerUnit)
}

func (st *state) PointOfInterest() (x, y float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.pointer[0], st.pointer[1]
}

func (st *state) SetPointOfInterest(x, y float32) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.pointer = [2]float32{x, y}
}

func (st *state) Spin() float32 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.spin.Value
}

func (st *state) SpinOscillator() *animator.WrappingOscillator {
	return st.spin
}

func (st *state) Update(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.spin.Advance(now)
}

func (st *state) SwayEnabled() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sway
}

func (st *state) SetSwayEnabled(enabled bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sway = enabled
}

func (st *state) HelpVisible() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.help
}

func (st *state) ToggleHelp() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.help = !st.help
	return st.help
}

func (st *state) PanelOpen() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.panel
}

func (st *state) SetPanelOpen(open bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.panel = open
}

func (st *state) ShowGrid() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.showGrid
}

func (st *state) SetShowGrid(show bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.showGrid = show
}

func (st *state) LowFidelity() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lowFidelity
}

func (st *state) SetLowFidelity(low bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lowFidelity = low
}

func (st *state) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.position = [3]float32{}
	st.rotation = [3]float32{}
	st.scale = [3]float32{1, 1, 1}
	st.drag = [2]float32{}
}

func (st *state) Apply(s transform.Stack, width, height int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if width > 0 && height > 0 {
		s.Scale(float32(height)/float32(width), 1, 1)
	}
	s.Translate(st.position[0], st.position[1], st.position[2])
	s.RotateX(st.rotation[0])
	s.RotateY(st.rotation[1])
	s.RotateZ(st.rotation[2])
	s.RotateY(st.spin.Value)
	s.Scale(st.scale[0], st.scale[1], st.scale[2])
}

func (st *state) Billboard(s transform.Stack) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s.RotateY(-st.spin.Value)
	s.RotateZ(-st.rotation[2])
	s.RotateY(-st.rotation[1])
	s.RotateX(-st.rotation[0])
}
