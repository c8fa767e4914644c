package animator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestBoundedOscillatorIntegratesElapsedTime(t *testing.T) {
	o := NewBoundedOscillator(0, -10, 10, 4, 1, epoch)
	o.Advance(epoch.Add(500 * time.Millisecond))
	assert.InDelta(t, 2, o.Value, 1e-6)

	o.Direction = -1
	o.Advance(epoch.Add(1500 * time.Millisecond))
	assert.InDelta(t, -2, o.Value, 1e-6)
	assert.Equal(t, epoch.Add(1500*time.Millisecond), o.LastUpdate())
}

func TestBoundedOscillatorReachesMaxOnceThenFlips(t *testing.T) {
	starts := []float32{-7.0 / 3, -1, 0, 3.3, 6.99}
	for _, start := range starts {
		clock := NewManualClock(epoch)
		o := NewBoundedOscillator(start, -7.0/3, 7, 4.8, 1, clock.Now())

		hits := 0
		flipped := false
		for range 200 {
			o.Advance(clock.Advance(37 * time.Millisecond))
			require.GreaterOrEqual(t, o.Value, o.Min)
			require.LessOrEqual(t, o.Value, o.Max)
			if o.Value == o.Max {
				hits++
			}
			if o.Direction < 0 {
				flipped = true
				break
			}
		}
		assert.True(t, flipped, "start %v", start)
		assert.Equal(t, 1, hits, "start %v", start)

		// the tick after the flip moves back inside the range
		o.Advance(clock.Advance(37 * time.Millisecond))
		assert.Less(t, o.Value, o.Max)
	}
}

func TestBoundedOscillatorNeverLeavesBounds(t *testing.T) {
	clock := NewManualClock(epoch)
	o := NewBoundedOscillator(0, -3, 9, 40, -1, clock.Now())
	flips := 0
	dir := o.Direction
	for i := range 2000 {
		o.Advance(clock.Advance(time.Duration(1+i%250) * time.Millisecond))
		assert.GreaterOrEqual(t, o.Value, float32(-3))
		assert.LessOrEqual(t, o.Value, float32(9))
		if o.Direction != dir {
			flips++
			dir = o.Direction
		}
	}
	assert.Greater(t, flips, 4)
}

func TestBoundedOscillatorClampsConstruction(t *testing.T) {
	o := NewBoundedOscillator(50, 10, -10, 1, 0, epoch)
	assert.Equal(t, float32(-10), o.Min)
	assert.Equal(t, float32(10), o.Max)
	assert.Equal(t, float32(10), o.Value)
	assert.Equal(t, float32(1), o.Direction)

	o.SetBounds(-2, 2)
	assert.Equal(t, float32(2), o.Value)
}

func TestBackwardsClockIsIgnored(t *testing.T) {
	o := NewBoundedOscillator(1, 0, 10, 5, 1, epoch)
	o.Advance(epoch.Add(-time.Second))
	assert.Equal(t, float32(1), o.Value)
}

func TestWrappingOscillatorStaysInHalfOpenRange(t *testing.T) {
	clock := NewManualClock(epoch)
	o := NewWrappingOscillator(170, 45, clock.Now())

	o.Advance(clock.Advance(time.Second))
	assert.InDelta(t, -145, o.Value, 1e-4)

	for range 500 {
		v := o.Advance(clock.Advance(333 * time.Millisecond))
		assert.Greater(t, v, float32(-180))
		assert.LessOrEqual(t, v, float32(180))
	}

	o.Value = 0
	o.Direction = -1
	o.Rate = 180
	o.Advance(clock.Advance(time.Second))
	assert.Equal(t, float32(180), o.Value)
}

func TestResumeUsesResumeTimestamp(t *testing.T) {
	clock := NewManualClock(epoch)
	a := NewAnimator(WithClock(clock))

	sway := NewBoundedOscillator(0, -100, 100, 10, 1, clock.Now())
	spin := NewWrappingOscillator(0, 45, clock.Now())
	a.Register(sway, spin, sway)
	require.Equal(t, 2, a.Len())

	sway.Advance(clock.Advance(100 * time.Millisecond))
	spin.Advance(clock.Now())
	assert.InDelta(t, 1, sway.Value, 1e-6)

	a.Pause()
	assert.True(t, a.Paused())
	clock.Advance(time.Hour)
	assert.Equal(t, epoch.Add(100*time.Millisecond), sway.LastUpdate())

	resumed := a.Resume()
	assert.False(t, a.Paused())
	assert.Equal(t, clock.Now(), resumed)
	assert.Equal(t, resumed, sway.LastUpdate())
	assert.Equal(t, resumed, spin.LastUpdate())

	// first tick after resume integrates only the time since resume
	sway.Advance(clock.Advance(200 * time.Millisecond))
	spin.Advance(clock.Now())
	assert.InDelta(t, 3, sway.Value, 1e-6)
	assert.InDelta(t, 4.5+9, spin.Value, 1e-4)
}

func TestStaleDeltaWithoutResume(t *testing.T) {
	// the failure mode Resume guards against: an unreset timestamp integrates the whole pause
	clock := NewManualClock(epoch)
	sway := NewBoundedOscillator(0, -100, 100, 10, 1, clock.Now())
	clock.Advance(5 * time.Second)
	sway.Advance(clock.Now())
	assert.InDelta(t, 50, sway.Value, 1e-6)
}

func TestToggleAndUnregister(t *testing.T) {
	clock := NewManualClock(epoch)
	a := NewAnimator(WithClock(clock), WithPaused(true))
	assert.True(t, a.Paused())

	o := NewBoundedOscillator(0, -1, 1, 1, 1, epoch)
	a.Register(o)
	clock.Advance(time.Minute)

	assert.True(t, a.Toggle())
	assert.Equal(t, clock.Now(), o.LastUpdate())
	assert.False(t, a.Toggle())
	assert.True(t, a.Paused())

	assert.True(t, a.Unregister(o))
	assert.False(t, a.Unregister(o))
	assert.Equal(t, 0, a.Len())
}

func TestRestamp(t *testing.T) {
	clock := NewManualClock(epoch)
	a := NewAnimator(WithClock(clock))
	o := NewBoundedOscillator(0, -1, 1, 1, 1, epoch)
	clock.Advance(time.Second)
	a.Restamp(o)
	assert.Equal(t, clock.Now(), o.LastUpdate())
	assert.False(t, a.Paused())
}
