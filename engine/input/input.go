// Package input maps window events onto scene commands.
// Keys go through a fixed command table; pointer events drive the drag rotation and the point of interest.
package input

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/camera"
	"github.com/Carmen-Shannon/oxy-marsh/engine/game_object"
	"github.com/Carmen-Shannon/oxy-marsh/engine/panel"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
)

// Command is one row of the key table.
type Command struct {
	// Keys lists every key code that triggers the command.
	Keys []uint32
	// Label names the keys in help output, e.g. "W / Up".
	Label string
	// Description says what the command does.
	Description string

	run func(h *handler, key uint32)
}

// Handler receives window events and applies them to a scene.
type Handler interface {
	// KeyDown runs the command bound to keyCode.
	//
	// Parameters:
	//   - keyCode: the GLFW key code
	//
	// Returns:
	//   - bool: false if no command is bound to the key
	KeyDown(keyCode uint32) bool

	// PointerDown starts a drag at window coordinates (x, y).
	PointerDown(x, y float64)

	// PointerMove updates the point of interest and, while dragging, the world rotation.
	PointerMove(x, y float64)

	// PointerUp ends the drag.
	PointerUp(x, y float64)

	// Commands returns the key table in help order.
	Commands() []Command

	// HelpLines renders the key table as one line per command.
	//
	// Returns:
	//   - []string: the help text
	HelpLines() []string

	// Drag returns the drag controller fed by pointer events.
	Drag() camera.DragController
}

type handler struct {
	mu       *sync.Mutex
	scene    scene.Scene
	panel    panel.Panel
	drag     camera.DragController
	size     func() (int, int)
	commands []Command
	byKey    map[uint32]int
}

var _ Handler = &handler{}

// NewHandler builds the command table for sc.
//
// Parameters:
//   - sc: the scene receiving commands
//   - p: the control panel toggled by the panel key, may be nil
//   - options: functional options to configure the handler
//
// Returns:
//   - Handler: the handler
func NewHandler(sc scene.Scene, p panel.Panel, options ...HandlerBuilderOption) Handler {
	if sc == nil {
		panic("input: handler needs a scene")
	}
	h := &handler{
		mu:    &sync.Mutex{},
		scene: sc,
		panel: p,
		size:  sc.Renderer().Size,
	}
	for _, opt := range options {
		opt(h)
	}
	if h.drag == nil {
		h.drag = camera.NewDragController(sc.State())
	}

	h.commands = defaultCommands()
	h.byKey = make(map[uint32]int)
	for i, c := range h.commands {
		for _, k := range c.Keys {
			h.byKey[k] = i
		}
	}
	return h
}

func defaultCommands() []Command {
	nudge := func(dx, dy float32) func(*handler, uint32) {
		return func(h *handler, _ uint32) { h.scene.State().Nudge(dx, dy) }
	}
	digits := make([]uint32, 0, 10)
	for k := uint32(common.Key1); k <= common.Key9; k++ {
		digits = append(digits, k)
	}
	digits = append(digits, common.Key0)

	return []Command{
		{Keys: []uint32{common.KeyP}, Label: "P", Description: "toggle animation", run: (*handler).toggleAnimation},
		{Keys: []uint32{common.KeySlash}, Label: "/", Description: "toggle help", run: (*handler).toggleHelp},
		{Keys: []uint32{common.KeyPeriod}, Label: ".", Description: "toggle control panel", run: (*handler).togglePanel},
		{Keys: []uint32{common.KeyW, common.KeyUp}, Label: "W / Up", Description: "move scene up", run: nudge(0, -1)},
		{Keys: []uint32{common.KeyA, common.KeyLeft}, Label: "A / Left", Description: "move scene left", run: nudge(1, 0)},
		{Keys: []uint32{common.KeyS, common.KeyDown}, Label: "S / Down", Description: "move scene down", run: nudge(0, 1)},
		{Keys: []uint32{common.KeyD, common.KeyRight}, Label: "D / Right", Description: "move scene right", run: nudge(-1, 0)},
		{Keys: []uint32{common.KeyEqual, common.KeyKPAdd}, Label: "= / +", Description: "grow scene",
			run: func(h *handler, _ uint32) { h.scene.State().NudgeScale(1) }},
		{Keys: []uint32{common.KeyMinus, common.KeyKPSubtract}, Label: "-", Description: "shrink scene",
			run: func(h *handler, _ uint32) { h.scene.State().NudgeScale(-1) }},
		{Keys: digits, Label: "1..0", Description: "sway preset, stronger and faster toward 0", run: (*handler).swayPreset},
		{Keys: []uint32{common.KeyR}, Label: "R", Description: "reset position, rotation and scale",
			run: func(h *handler, _ uint32) { h.scene.Reset() }},
		{Keys: []uint32{common.KeyC}, Label: "C", Description: "add a cattail",
			run: func(h *handler, _ uint32) { h.scene.AddCattail() }},
		{Keys: []uint32{common.KeyV}, Label: "V", Description: "remove a cattail",
			run: func(h *handler, _ uint32) { h.scene.RemoveCattail() }},
		{Keys: []uint32{common.KeyF}, Label: "F", Description: "add a dragonfly",
			run: func(h *handler, _ uint32) { h.scene.AddDragonfly() }},
		{Keys: []uint32{common.KeyG}, Label: "G", Description: "remove a dragonfly",
			run: func(h *handler, _ uint32) { h.scene.RemoveDragonfly() }},
		{Keys: []uint32{common.KeyH}, Label: "H", Description: "toggle ground grid", run: (*handler).toggleGrid},
		{Keys: []uint32{common.KeyL}, Label: "L", Description: "toggle low fidelity heads", run: (*handler).toggleLowFidelity},
	}
}

func (h *handler) KeyDown(keyCode uint32) bool {
	h.mu.Lock()
	i, ok := h.byKey[keyCode]
	h.mu.Unlock()
	if !ok {
		log.Printf("[Input] unused key %d", keyCode)
		return false
	}
	h.commands[i].run(h, keyCode)
	// A paused scene still shows the effect of the key.
	h.scene.RequestRedraw()
	return true
}

func (h *handler) PointerDown(x, y float64) {
	if h.scene.Paused() {
		return
	}
	nx, ny := h.ndc(x, y)
	h.drag.PointerDown(nx, ny)
}

func (h *handler) PointerMove(x, y float64) {
	if h.scene.Paused() {
		return
	}
	nx, ny := h.ndc(x, y)
	h.drag.PointerMove(nx, ny)
}

func (h *handler) PointerUp(x, y float64) {
	if h.scene.Paused() {
		return
	}
	nx, ny := h.ndc(x, y)
	h.drag.PointerUp(nx, ny)
}

func (h *handler) Commands() []Command {
	out := make([]Command, len(h.commands))
	copy(out, h.commands)
	return out
}

func (h *handler) HelpLines() []string {
	lines := make([]string, 0, len(h.commands))
	for _, c := range h.commands {
		lines = append(lines, fmt.Sprintf("%-10s %s", c.Label, c.Description))
	}
	return lines
}

func (h *handler) Drag() camera.DragController {
	return h.drag
}

func (h *handler) ndc(x, y float64) (float32, float32) {
	w, ht := h.size()
	return camera.ScreenToNDC(x, y, w, ht)
}

func (h *handler) toggleAnimation(uint32) {
	on := h.scene.ToggleAnimation()
	log.Printf("[Input] animation %s", onOff(on))
}

func (h *handler) toggleHelp(uint32) {
	if !h.scene.State().ToggleHelp() {
		return
	}
	log.Printf("[Input] keys:\n%s", strings.Join(h.HelpLines(), "\n"))
}

func (h *handler) togglePanel(uint32) {
	st := h.scene.State()
	if h.panel == nil {
		st.SetPanelOpen(!st.PanelOpen())
		return
	}
	open := h.panel.Toggle()
	st.SetPanelOpen(open)
	if !open {
		return
	}
	for _, f := range h.panel.Fields() {
		switch f.Kind {
		case panel.FieldBool:
			log.Printf("[Input] %s/%s = %t", f.Folder, f.Name, f.Bool)
		default:
			log.Printf("[Input] %s/%s = %.3f [%g, %g]", f.Folder, f.Name, f.Number, f.Min, f.Max)
		}
	}
}

func (h *handler) swayPreset(key uint32) {
	p, ok := game_object.SwayPresetForDigit(int(key - common.Key0))
	if !ok {
		return
	}
	h.scene.SetSwayPreset(p)
	log.Printf("[Input] sway max %.1f rate %.1f", p.Max, p.Rate)
}

func (h *handler) toggleGrid(uint32) {
	st := h.scene.State()
	st.SetShowGrid(!st.ShowGrid())
}

func (h *handler) toggleLowFidelity(uint32) {
	st := h.scene.State()
	st.SetLowFidelity(!st.LowFidelity())
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
