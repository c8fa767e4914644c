package game_object

import (
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
)

// cattail is the implementation of the Cattail interface.
type cattail struct {
	gameObject
	sway *animator.BoundedOscillator
}

// Cattail is a reed rooted at its position whose stalk and head bend by a swaying angle.
type Cattail interface {
	GameObject

	// Sway returns the current sway angle in degrees.
	//
	// Returns:
	//   - float32: the sway angle
	Sway() float32

	// Oscillator returns the sway oscillator.
	//
	// Returns:
	//   - *animator.BoundedOscillator: the oscillator driving Sway
	Oscillator() *animator.BoundedOscillator

	// SetSwayPreset changes the sway amplitude and rate, sets the direction of motion and restamps the oscillator.
	//
	// Parameters:
	//   - preset: the new amplitude and rate
	//   - direction: +1 or -1
	//   - now: the new last-update timestamp
	SetSwayPreset(preset SwayPreset, direction float32, now time.Time)
}

var _ Cattail = &cattail{}

// NewCattail creates a cattail with zero sway stamped at now.
//
// Parameters:
//   - preset: sway amplitude and rate
//   - direction: initial direction of the sway, +1 or -1
//   - now: the initial last-update timestamp
//   - options: functional options for the shared entity state
//
// Returns:
//   - Cattail: the new cattail
func NewCattail(preset SwayPreset, direction float32, now time.Time, options ...GameObjectBuilderOption) Cattail {
	return &cattail{
		gameObject: newGameObject(options...),
		sway:       animator.NewBoundedOscillator(0, -preset.Max/3, preset.Max, preset.Rate, direction, now),
	}
}

func (c *cattail) Sway() float32 {
	return c.sway.Value
}

func (c *cattail) Oscillator() *animator.BoundedOscillator {
	return c.sway
}

func (c *cattail) SetSwayPreset(preset SwayPreset, direction float32, now time.Time) {
	c.sway.SetBounds(-preset.Max/3, preset.Max)
	c.sway.Rate = preset.Rate
	c.sway.Direction = 1
	if direction < 0 {
		c.sway.Direction = -1
	}
	c.sway.ResetTimestamp(now)
}

func (c *cattail) Update(now time.Time) {
	c.sway.Advance(now)
}

func (c *cattail) Timers() []animator.Timed {
	return []animator.Timed{c.sway}
}
