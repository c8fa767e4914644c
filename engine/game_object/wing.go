package game_object

import (
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
)

// WingPosition identifies one of the four wings of a dragonfly.
type WingPosition int

const (
	WingForeLeft WingPosition = iota
	WingForeRight
	WingHindLeft
	WingHindRight
)

// Mirrored reports whether the wing is drawn with a handedness flip.
func (p WingPosition) Mirrored() bool {
	return p == WingForeRight || p == WingHindRight
}

// Hind reports whether the wing belongs to the rear pair.
func (p WingPosition) Hind() bool {
	return p == WingHindLeft || p == WingHindRight
}

// Wing is one flapping wing. The fore pair starts at the top of the beat and the hind pair at the bottom,
// so the pairs beat in counter-phase.
type Wing struct {
	Position WingPosition
	Flap     *animator.BoundedOscillator
}

// NewWing creates a wing whose flap oscillator is stamped at now.
//
// Parameters:
//   - pos: which wing this is
//   - lo, hi: flap angle bounds in degrees
//   - rate: flap rate in degrees per second
//   - now: the initial last-update timestamp
//
// Returns:
//   - *Wing: the new wing
func NewWing(pos WingPosition, lo, hi, rate float32, now time.Time) *Wing {
	start, dir := hi, float32(-1)
	if pos.Hind() {
		start, dir = lo, 1
	}
	return &Wing{
		Position: pos,
		Flap:     animator.NewBoundedOscillator(start, lo, hi, rate, dir, now),
	}
}

// Angle returns the current flap angle in degrees.
func (w *Wing) Angle() float32 {
	return w.Flap.Value
}

// Update advances the flap to now.
func (w *Wing) Update(now time.Time) {
	w.Flap.Advance(now)
}
