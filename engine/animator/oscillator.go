package animator

import (
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/chewxy/math32"
)

// Timed is anything that integrates over wall-clock time from its own last-update timestamp.
type Timed interface {
	// ResetTimestamp discards the time elapsed since the last update by moving the timestamp to now.
	//
	// Parameters:
	//   - now: the new last-update timestamp
	ResetTimestamp(now time.Time)
}

// elapsedSeconds returns the time since last in seconds, measured at millisecond resolution.
// Clocks running backwards yield zero.
func elapsedSeconds(last, now time.Time) float32 {
	ms := now.Sub(last).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return float32(ms) / 1000
}

// BoundedOscillator is an angle that sweeps between Min and Max, reflecting off each bound.
// Rate is in units per second and Direction is +1 or -1.
type BoundedOscillator struct {
	Value     float32
	Min       float32
	Max       float32
	Rate      float32
	Direction float32

	last time.Time
}

var _ Timed = &BoundedOscillator{}

// NewBoundedOscillator creates an oscillator stamped at now. Value is clamped into [min, max]
// and a zero direction becomes +1.
//
// Parameters:
//   - value: starting value
//   - lo, hi: reflecting bounds
//   - rate: units per second
//   - direction: initial sign of motion
//   - now: the initial last-update timestamp
//
// Returns:
//   - *BoundedOscillator: the new oscillator
func NewBoundedOscillator(value, lo, hi, rate, direction float32, now time.Time) *BoundedOscillator {
	if lo > hi {
		lo, hi = hi, lo
	}
	o := &BoundedOscillator{
		Value:     common.Clamp(value, lo, hi),
		Min:       lo,
		Max:       hi,
		Rate:      rate,
		Direction: 1,
		last:      now,
	}
	if direction < 0 {
		o.Direction = -1
	}
	return o
}

// Advance integrates value += rate * elapsed * direction since the last update, clamps into [Min, Max]
// and flips Direction when a bound is hit.
//
// Parameters:
//   - now: the current timestamp, which becomes the new last-update timestamp
//
// Returns:
//   - float32: the new value
func (o *BoundedOscillator) Advance(now time.Time) float32 {
	dt := elapsedSeconds(o.last, now)
	o.last = now
	o.Value += o.Rate * dt * o.Direction
	if o.Value >= o.Max {
		o.Value = o.Max
		o.Direction = -math32.Abs(o.Direction)
	} else if o.Value <= o.Min {
		o.Value = o.Min
		o.Direction = math32.Abs(o.Direction)
	}
	return o.Value
}

// SetBounds replaces Min and Max and pulls Value back inside them.
func (o *BoundedOscillator) SetBounds(lo, hi float32) {
	if lo > hi {
		lo, hi = hi, lo
	}
	o.Min, o.Max = lo, hi
	o.Value = common.Clamp(o.Value, lo, hi)
}

func (o *BoundedOscillator) ResetTimestamp(now time.Time) {
	o.last = now
}

// LastUpdate returns the timestamp the next Advance measures from.
func (o *BoundedOscillator) LastUpdate() time.Time {
	return o.last
}

// WrappingOscillator is a free-running angle in degrees kept inside (-180, 180].
type WrappingOscillator struct {
	Value     float32
	Rate      float32
	Direction float32

	last time.Time
}

var _ Timed = &WrappingOscillator{}

// NewWrappingOscillator creates a free-running oscillator stamped at now.
func NewWrappingOscillator(value, rate float32, now time.Time) *WrappingOscillator {
	return &WrappingOscillator{
		Value:     common.Wrap180(value),
		Rate:      rate,
		Direction: 1,
		last:      now,
	}
}

// Advance integrates the angle since the last update and wraps it into (-180, 180].
func (o *WrappingOscillator) Advance(now time.Time) float32 {
	dt := elapsedSeconds(o.last, now)
	o.last = now
	o.Value = common.Wrap180(o.Value + o.Rate*dt*o.Direction)
	return o.Value
}

func (o *WrappingOscillator) ResetTimestamp(now time.Time) {
	o.last = now
}

// LastUpdate returns the timestamp the next Advance measures from.
func (o *WrappingOscillator) LastUpdate() time.Time {
	return o.last
}
