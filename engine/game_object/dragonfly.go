package game_object

import (
	"math/rand/v2"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/chewxy/math32"
)

// dragonfly is the implementation of the Dragonfly interface.
type dragonfly struct {
	gameObject
	flight  FlightSettings
	rng     *rand.Rand
	target  [3]float32
	heading float32
	frames  int
	wings   [4]*Wing
}

// Dragonfly wanders between random points of interest while beating four wings.
//
// Pathing is frame based: every Step moves the body 1/Smoothing of the remaining distance toward the target.
// A new target is drawn once the body is within Tolerance of it or after Cooldown steps.
type Dragonfly interface {
	GameObject

	// Target returns the point the dragonfly is flying toward.
	//
	// Returns:
	//   - [3]float32: the target
	Target() [3]float32

	// SetTarget replaces the target and restarts the cooldown.
	//
	// Parameters:
	//   - t: the new target
	SetTarget(t [3]float32)

	// Heading returns the yaw in degrees about +Y that points the body along its last step.
	//
	// Returns:
	//   - float32: the heading
	Heading() float32

	// Step moves the body one frame toward the target, retargeting when it arrives or the cooldown runs out.
	//
	// Returns:
	//   - bool: true if a new target was chosen
	Step() bool

	// Wings returns the four wings in WingPosition order.
	//
	// Returns:
	//   - [4]*Wing: the wings
	Wings() [4]*Wing

	// Flight returns the flight settings.
	//
	// Returns:
	//   - FlightSettings: the settings
	Flight() FlightSettings
}

var _ Dragonfly = &dragonfly{}

// NewDragonfly creates a dragonfly with a random first target and wings stamped at now.
//
// Parameters:
//   - flight: path and wing settings, zero fields take defaults
//   - rng: source of targets
//   - now: the initial last-update timestamp
//   - options: functional options for the shared entity state
//
// Returns:
//   - Dragonfly: the new dragonfly
func NewDragonfly(flight FlightSettings, rng *rand.Rand, now time.Time, options ...GameObjectBuilderOption) Dragonfly {
	if rng == nil {
		panic("dragonfly requires a random source")
	}
	d := &dragonfly{
		gameObject: newGameObject(options...),
		flight:     flight.normalize(),
		rng:        rng,
	}
	for i := range d.wings {
		d.wings[i] = NewWing(WingPosition(i), d.flight.FlapMin, d.flight.FlapMax, d.flight.FlapRate, now)
	}
	d.target = d.randomTarget()
	return d
}

func (d *dragonfly) randomTarget() [3]float32 {
	var t [3]float32
	for i := range t {
		t[i] = d.flight.Min[i] + d.rng.Float32()*(d.flight.Max[i]-d.flight.Min[i])
	}
	return t
}

func (d *dragonfly) Target() [3]float32 {
	return d.target
}

func (d *dragonfly) SetTarget(t [3]float32) {
	d.target = t
	d.frames = 0
}

func (d *dragonfly) Heading() float32 {
	return d.heading
}

func (d *dragonfly) Step() bool {
	var delta [3]float32
	for i := range d.position {
		delta[i] = (d.target[i] - d.position[i]) / d.flight.Smoothing
		d.position[i] += delta[i]
	}
	if delta[0] != 0 || delta[2] != 0 {
		d.heading = math32.Atan2(delta[0], delta[2]) * 180 / math32.Pi
	}

	d.frames++
	if common.Distance3(d.position, d.target) < d.flight.Tolerance || d.frames >= d.flight.Cooldown {
		d.SetTarget(d.randomTarget())
		return true
	}
	return false
}

func (d *dragonfly) Wings() [4]*Wing {
	return d.wings
}

func (d *dragonfly) Flight() FlightSettings {
	return d.flight
}

func (d *dragonfly) Update(now time.Time) {
	for _, w := range d.wings {
		w.Update(now)
	}
	d.Step()
}

func (d *dragonfly) Timers() []animator.Timed {
	out := make([]animator.Timed, 0, len(d.wings))
	for _, w := range d.wings {
		out = append(out, w.Flap)
	}
	return out
}
