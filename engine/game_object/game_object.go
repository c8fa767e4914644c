// Package game_object holds the animated entities of the marsh scene. Each entity owns its oscillators,
// and every oscillator keeps its own last-update timestamp.
package game_object

import (
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
)

var nextID atomic.Uint64

// gameObject is the state shared by every entity.
type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	position [3]float32
}

// GameObject is an entity placed in the scene and advanced once per frame.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Enabled returns whether this object is drawn and advanced.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is drawn and advanced.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the object's position in scene space.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition moves the object.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p [3]float32)

	// Update advances the object's animated state to now.
	//
	// Parameters:
	//   - now: the frame timestamp
	Update(now time.Time)

	// Timers returns every oscillator the object owns so an Animator can restamp them on resume.
	//
	// Returns:
	//   - []animator.Timed: the object's oscillators
	Timers() []animator.Timed
}

func newGameObject(options ...GameObjectBuilderOption) gameObject {
	g := gameObject{id: nextID.Add(1)}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(&g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() [3]float32 {
	return g.position
}

func (g *gameObject) SetPosition(p [3]float32) {
	g.position = p
}

// RandomDirection returns -1 or +1 with equal probability.
func RandomDirection(rng interface{ Float32() float32 }) float32 {
	if rng.Float32() < 0.5 {
		return -1
	}
	return 1
}
