// Package scene composes the marsh: cattails, dragonflies, the ground grid, pollen and the pointer marker.
// The composer only places shapes. Every mesh is generated once at construction and referenced by name
// through the shape registry.
package scene

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/camera"
	"github.com/Carmen-Shannon/oxy-marsh/engine/game_object"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer/vertex_buffer"
	"github.com/Carmen-Shannon/oxy-marsh/engine/shape"
	"github.com/Carmen-Shannon/oxy-marsh/engine/transform"
)

// SkyColor is the clear color of the marsh.
var SkyColor = common.Color{0.5, 0.7, 1, 1}

// Scene holds the marsh entities and draws them through a Renderer.
// Entity changes pause animation, mutate the entity list and resume, so a frame never sees a half-applied change.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Renderer returns the renderer the scene draws through.
	Renderer() renderer.Renderer

	// Registry returns the shape registry built at construction.
	Registry() shape.Registry

	// State returns the world pose and display toggles.
	State() camera.State

	// Animator returns the animator owning the pause state.
	Animator() animator.Animator

	// Stack returns the transform stack used by Draw.
	Stack() transform.Stack

	// Cattails returns a copy of the cattail list.
	Cattails() []game_object.Cattail

	// Dragonflies returns a copy of the dragonfly list.
	Dragonflies() []game_object.Dragonfly

	// AddCattail plants a cattail at a random spot.
	//
	// Returns:
	//   - game_object.Cattail: the new cattail, or nil once MaxCattails are planted
	AddCattail() game_object.Cattail

	// RemoveCattail removes the most recently added cattail.
	//
	// Returns:
	//   - bool: false if there was none
	RemoveCattail() bool

	// AddDragonfly releases a dragonfly at a random spot.
	//
	// Returns:
	//   - game_object.Dragonfly: the new dragonfly, or nil once MaxDragonflies are flying
	AddDragonfly() game_object.Dragonfly

	// RemoveDragonfly removes the most recently added dragonfly.
	//
	// Returns:
	//   - bool: false if there was none
	RemoveDragonfly() bool

	// SwayPreset returns the sway shared by every cattail.
	SwayPreset() game_object.SwayPreset

	// SetSwayPreset applies a sway preset to every cattail, gives each a random direction and restamps it.
	//
	// Parameters:
	//   - p: the preset
	SetSwayPreset(p game_object.SwayPreset)

	// SetSwayEnabled turns cattail sway on or off. Turning it on restamps the cattails so the time spent
	// still is not integrated.
	//
	// Parameters:
	//   - enabled: true to sway
	SetSwayEnabled(enabled bool)

	// Paused reports whether animation is stopped.
	Paused() bool

	// SetAnimating starts or stops animation. Starting restamps every oscillator.
	//
	// Parameters:
	//   - on: true to animate
	SetAnimating(on bool)

	// ToggleAnimation flips animation on or off.
	//
	// Returns:
	//   - bool: true if animating afterwards
	ToggleAnimation() bool

	// Reset returns the world pose to its defaults and requests a redraw.
	Reset()

	// RequestRedraw asks the driver for one frame even while paused.
	RequestRedraw()

	// TakeRedraw reports and clears a pending redraw request.
	TakeRedraw() bool

	// RedrawPending reports a pending redraw request without clearing it.
	RedrawPending() bool

	// Update advances every animated quantity to now. Does nothing while paused.
	//
	// Parameters:
	//   - now: the frame timestamp
	Update(now time.Time)

	// Draw issues the draw calls of one frame. It must run between the renderer's BeginFrame and EndFrame.
	// An unbalanced transform stack at the end of the frame is a programming error and panics.
	//
	// Returns:
	//   - error: the first draw error
	Draw() error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu       *sync.Mutex
	name     string
	renderer renderer.Renderer
	vb       vertex_buffer.VertexBuffer
	registry shape.Registry
	stack    transform.Stack
	state    camera.State
	anim     animator.Animator
	rng      *rand.Rand

	seed           uint64
	workers        int
	vertexCapacity int
	cattailCount   int
	dragonflyCount int
	showPollen     bool
	showMarker     bool

	swayPreset game_object.SwayPreset
	flight     game_object.FlightSettings

	cattails    []game_object.Cattail
	dragonflies []game_object.Dragonfly

	redraw  bool
	drawErr error
}

var _ Scene = &scene{}

// NewScene builds the shape registry into a vertex buffer uploaded through r and populates the marsh.
//
// Parameters:
//   - r: the renderer to upload to and draw through
//   - options: functional options for entity counts, seeding and collaborators
//
// Returns:
//   - Scene: the new scene
//   - error: a shape generation or upload error
func NewScene(r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if r == nil {
		panic("scene requires a renderer")
	}
	s := &scene{
		mu:             &sync.Mutex{},
		name:           "Marsh",
		renderer:       r,
		stack:          transform.NewStack(),
		seed:           uint64(time.Now().UnixNano()),
		vertexCapacity: vertex_buffer.DefaultCapacity,
		cattailCount:   8,
		dragonflyCount: 2,
		showPollen:     true,
		showMarker:     true,
		swayPreset:     game_object.DefaultSwayPreset,
		flight:         game_object.DefaultFlightSettings(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.anim == nil {
		s.anim = animator.NewAnimator()
	}
	if s.state == nil {
		s.state = camera.NewState(s.anim.Now())
	}
	s.rng = rand.New(rand.NewPCG(s.seed, s.seed^0x5deece66d))

	s.vb = vertex_buffer.NewVertexBuffer(r, vertex_buffer.WithCapacity(s.vertexCapacity), vertex_buffer.WithLabel(s.name))
	regOpts := []shape.RegistryBuilderOption{shape.WithDefinitions(shape.MarshDefinitions(s.seed)...)}
	if s.workers > 0 {
		regOpts = append(regOpts, shape.WithWorkers(s.workers))
	}
	reg, err := shape.NewRegistry(s.vb, regOpts...)
	if err != nil {
		return nil, fmt.Errorf("build shapes for %s: %w", s.name, err)
	}
	s.registry = reg
	r.SetClearColor(SkyColor)

	s.anim.Register(s.state.SpinOscillator())
	for range s.cattailCount {
		s.plantCattail()
	}
	for range s.dragonflyCount {
		s.releaseDragonfly()
	}
	log.Printf("[%s] %d shapes, %d vertices, %d cattails, %d dragonflies", s.name, reg.Len(), reg.VertexCount(), len(s.cattails), len(s.dragonflies))
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Renderer() renderer.Renderer {
	return s.renderer
}

func (s *scene) Registry() shape.Registry {
	return s.registry
}

func (s *scene) State() camera.State {
	return s.state
}

func (s *scene) Animator() animator.Animator {
	return s.anim
}

func (s *scene) Stack() transform.Stack {
	return s.stack
}

func (s *scene) Cattails() []game_object.Cattail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game_object.Cattail(nil), s.cattails...)
}

func (s *scene) Dragonflies() []game_object.Dragonfly {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]game_object.Dragonfly(nil), s.dragonflies...)
}

// Entity limits keep a full marsh, grid and overlays under renderer.MaxDrawsPerFrame.
const (
	MaxCattails    = 120
	MaxDragonflies = 60
)

// plantCattail appends a cattail with a random position, starting angle and direction. Caller must not hold mu.
func (s *scene) plantCattail() game_object.Cattail {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := game_object.NewCattail(s.swayPreset, game_object.RandomDirection(s.rng), s.anim.Now(),
		game_object.WithPosition(s.rng.Float32()*2-1, 0, s.rng.Float32()-0.5),
	)
	osc := c.Oscillator()
	osc.Value = common.Clamp(s.rng.Float32()*s.swayPreset.Max, osc.Min, osc.Max)
	s.cattails = append(s.cattails, c)
	s.anim.Register(c.Timers()...)
	return c
}

func (s *scene) releaseDragonfly() game_object.Dragonfly {
	s.mu.Lock()
	defer s.mu.Unlock()
	lo, hi := s.flight.Min, s.flight.Max
	d := game_object.NewDragonfly(s.flight, s.rng, s.anim.Now(), game_object.WithPosition(
		lo[0]+s.rng.Float32()*(hi[0]-lo[0]),
		lo[1]+s.rng.Float32()*(hi[1]-lo[1]),
		lo[2]+s.rng.Float32()*(hi[2]-lo[2]),
	))
	s.dragonflies = append(s.dragonflies, d)
	s.anim.Register(d.Timers()...)
	return d
}

// mutate pauses a running animator around fn and resumes it afterwards, restamping every oscillator.
func (s *scene) mutate(fn func()) {
	running := !s.anim.Paused()
	if running {
		s.anim.Pause()
	}
	fn()
	if running {
		s.anim.Resume()
	} else {
		s.RequestRedraw()
	}
}

func (s *scene) AddCattail() game_object.Cattail {
	if len(s.Cattails()) >= MaxCattails {
		log.Printf("[%s] cattail limit %d reached", s.name, MaxCattails)
		return nil
	}
	var c game_object.Cattail
	s.mutate(func() { c = s.plantCattail() })
	return c
}

func (s *scene) RemoveCattail() bool {
	removed := false
	s.mutate(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		n := len(s.cattails)
		if n == 0 {
			return
		}
		for _, t := range s.cattails[n-1].Timers() {
			s.anim.Unregister(t)
		}
		s.cattails[n-1] = nil
		s.cattails = s.cattails[:n-1]
		removed = true
	})
	return removed
}

func (s *scene) AddDragonfly() game_object.Dragonfly {
	if len(s.Dragonflies()) >= MaxDragonflies {
		log.Printf("[%s] dragonfly limit %d reached", s.name, MaxDragonflies)
		return nil
	}
	var d game_object.Dragonfly
	s.mutate(func() { d = s.releaseDragonfly() })
	return d
}

func (s *scene) RemoveDragonfly() bool {
	removed := false
	s.mutate(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		n := len(s.dragonflies)
		if n == 0 {
			return
		}
		for _, t := range s.dragonflies[n-1].Timers() {
			s.anim.Unregister(t)
		}
		s.dragonflies[n-1] = nil
		s.dragonflies = s.dragonflies[:n-1]
		removed = true
	})
	return removed
}

func (s *scene) SwayPreset() game_object.SwayPreset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swayPreset
}

func (s *scene) SetSwayPreset(p game_object.SwayPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swayPreset = p
	now := s.anim.Now()
	for _, c := range s.cattails {
		c.SetSwayPreset(p, game_object.RandomDirection(s.rng), now)
	}
}

func (s *scene) SetSwayEnabled(enabled bool) {
	was := s.state.SwayEnabled()
	s.state.SetSwayEnabled(enabled)
	if enabled && !was {
		for _, c := range s.Cattails() {
			s.anim.Restamp(c.Timers()...)
		}
	}
}

func (s *scene) Paused() bool {
	return s.anim.Paused()
}

func (s *scene) SetAnimating(on bool) {
	switch {
	case on && s.anim.Paused():
		s.anim.Resume()
	case !on && !s.anim.Paused():
		s.anim.Pause()
	}
}

func (s *scene) ToggleAnimation() bool {
	return s.anim.Toggle()
}

func (s *scene) Reset() {
	s.state.Reset()
	s.RequestRedraw()
}

func (s *scene) RequestRedraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redraw = true
}

func (s *scene) TakeRedraw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.redraw
	s.redraw = false
	return r
}

func (s *scene) RedrawPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redraw
}

func (s *scene) Update(now time.Time) {
	if s.anim.Paused() {
		return
	}
	s.state.Update(now)
	sway := s.state.SwayEnabled()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sway {
		for _, c := range s.cattails {
			if c.Enabled() {
				c.Update(now)
			}
		}
	}
	for _, d := range s.dragonflies {
		if d.Enabled() {
			d.Update(now)
		}
	}
}

func (s *scene) Draw() error {
	s.mu.Lock()
	cattails := append([]game_object.Cattail(nil), s.cattails...)
	dragonflies := append([]game_object.Dragonfly(nil), s.dragonflies...)
	s.mu.Unlock()

	s.drawErr = nil
	s.stack.Reset()
	w, h := s.renderer.Size()

	s.stack.With(func() {
		s.state.Apply(s.stack, w, h)
		if s.state.ShowGrid() {
			s.drawGrid()
		}
		for _, c := range cattails {
			if c.Enabled() {
				s.drawCattail(c)
			}
		}
		for _, d := range dragonflies {
			if d.Enabled() {
				s.drawDragonfly(d)
			}
		}
		if s.showPollen {
			s.drawPollen()
		}
	})
	if s.showMarker {
		s.drawMarker(w, h)
	}

	if err := s.stack.AssertBalanced(); err != nil {
		panic(fmt.Sprintf("[%s] %v", s.name, err))
	}
	return s.drawErr
}

// draw issues one shape at the active matrix, keeping the first error of the frame.
func (s *scene) draw(name string) {
	s.renderer.SetModelMatrix(s.stack.Current())
	if err := s.registry.Draw(s.renderer, name); err != nil && s.drawErr == nil {
		s.drawErr = fmt.Errorf("draw %s: %w", name, err)
	}
}
