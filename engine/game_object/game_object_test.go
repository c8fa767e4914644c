package game_object

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSwayPresetForDigit(t *testing.T) {
	tests := []struct {
		digit int
		want  SwayPreset
	}{
		{1, SwayPreset{Max: 2, Rate: 0.8}},
		{6, SwayPreset{Max: 7, Rate: 4.8}},
		{9, SwayPreset{Max: 10, Rate: 7.2}},
		{0, SwayPreset{Max: 11, Rate: 8}},
	}
	for _, tt := range tests {
		got, ok := SwayPresetForDigit(tt.digit)
		require.True(t, ok)
		assert.Equal(t, tt.want.Max, got.Max, "digit %d", tt.digit)
		assert.InDelta(t, tt.want.Rate, got.Rate, 1e-5, "digit %d", tt.digit)
	}
	_, ok := SwayPresetForDigit(10)
	assert.False(t, ok)
}

func TestCattailSwayStaysInBounds(t *testing.T) {
	c := NewCattail(DefaultSwayPreset, 1, epoch, WithPosition(0.5, 0, -0.2))
	assert.Equal(t, [3]float32{0.5, 0, -0.2}, c.Position())
	assert.True(t, c.Enabled())

	osc := c.Oscillator()
	assert.Equal(t, float32(7), osc.Max)
	assert.InDelta(t, -7.0/3, osc.Min, 1e-6)

	now := epoch
	hitMax := 0
	for range 200 {
		now = now.Add(250 * time.Millisecond)
		c.Update(now)
		require.GreaterOrEqual(t, c.Sway(), osc.Min)
		require.LessOrEqual(t, c.Sway(), osc.Max)
		if c.Sway() == osc.Max {
			hitMax++
			assert.Equal(t, float32(-1), osc.Direction)
		}
	}
	assert.Positive(t, hitMax)
}

func TestCattailSetSwayPreset(t *testing.T) {
	c := NewCattail(DefaultSwayPreset, 1, epoch)
	c.Update(epoch.Add(time.Second))
	require.InDelta(t, 4.8, c.Sway(), 1e-5)

	later := epoch.Add(10 * time.Second)
	c.SetSwayPreset(SwayPreset{Max: 2, Rate: 0.8}, -1, later)
	assert.Equal(t, float32(2), c.Sway(), "value is pulled inside the new bounds")
	assert.Equal(t, float32(-1), c.Oscillator().Direction)
	assert.Equal(t, later, c.Oscillator().LastUpdate())

	c.Update(later.Add(time.Second))
	assert.InDelta(t, 1.2, c.Sway(), 1e-5)
}

func TestResumeRestampsEntityTimers(t *testing.T) {
	clock := animator.NewManualClock(epoch)
	anim := animator.NewAnimator(animator.WithClock(clock))
	c := NewCattail(DefaultSwayPreset, 1, epoch)
	anim.Register(c.Timers()...)

	anim.Pause()
	clock.Advance(time.Hour)
	anim.Resume()
	c.Update(clock.Advance(500 * time.Millisecond))
	assert.InDelta(t, 2.4, c.Sway(), 1e-5)
}

func TestDragonflyConvergesMonotonically(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	d := NewDragonfly(FlightSettings{Cooldown: 1 << 30}, rng, epoch, WithPosition(-0.8, 0, 0.4))
	target := [3]float32{0.6, 0.3, -0.2}
	d.SetTarget(target)

	prev := common.Distance3(d.Position(), target)
	for range 200 {
		if prev < d.Flight().Tolerance {
			break
		}
		retargeted := d.Step()
		if retargeted {
			break
		}
		dist := common.Distance3(d.Position(), target)
		require.Less(t, dist, prev)
		assert.InDelta(t, prev*15/16, dist, 1e-4, "each step closes 1/16 of the gap")
		prev = dist
	}
	assert.NotEqual(t, target, d.Target(), "a new target is chosen on arrival")
}

func TestDragonflyCooldownRetargets(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	d := NewDragonfly(FlightSettings{Cooldown: 5, Smoothing: 1000}, rng, epoch)
	d.SetTarget([3]float32{0.9, 0.6, 0.5})
	for i := range 4 {
		assert.False(t, d.Step(), "step %d", i)
	}
	assert.True(t, d.Step())
}

func TestDragonflyTargetsStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	d := NewDragonfly(FlightSettings{Cooldown: 1}, rng, epoch)
	f := d.Flight()
	for range 100 {
		d.Step()
		for i, v := range d.Target() {
			assert.GreaterOrEqual(t, v, f.Min[i])
			assert.LessOrEqual(t, v, f.Max[i])
		}
	}
}

func TestDragonflyHeadingFollowsStep(t *testing.T) {
	d := NewDragonfly(FlightSettings{}, rand.New(rand.NewPCG(7, 8)), epoch)
	d.SetTarget([3]float32{1, 0, 0})
	d.Step()
	assert.InDelta(t, 90, d.Heading(), 1e-4)
	d.SetTarget([3]float32{d.Position()[0], 0, 1})
	d.Step()
	assert.InDelta(t, 0, d.Heading(), 1e-4)
}

func TestWingsBeatInCounterPhase(t *testing.T) {
	d := NewDragonfly(FlightSettings{FlapMin: -20, FlapMax: 20, FlapRate: 40}, rand.New(rand.NewPCG(9, 10)), epoch)
	wings := d.Wings()
	assert.Equal(t, float32(20), wings[WingForeLeft].Angle())
	assert.Equal(t, float32(-20), wings[WingHindRight].Angle())
	assert.True(t, wings[WingForeRight].Position.Mirrored())
	assert.False(t, wings[WingHindLeft].Position.Mirrored())
	assert.Len(t, d.Timers(), 4)

	d.Update(epoch.Add(500 * time.Millisecond))
	assert.InDelta(t, 0, wings[WingForeLeft].Angle(), 1e-5)
	assert.InDelta(t, 0, wings[WingHindLeft].Angle(), 1e-5)
	assert.Equal(t, wings[WingForeLeft].Angle(), wings[WingForeRight].Angle())
}

func TestNewDragonflyRequiresRandomSource(t *testing.T) {
	assert.Panics(t, func() { NewDragonfly(FlightSettings{}, nil, epoch) })
}

func TestIDsAreUnique(t *testing.T) {
	a := NewCattail(DefaultSwayPreset, 1, epoch)
	b := NewCattail(DefaultSwayPreset, 1, epoch)
	assert.NotEqual(t, a.ID(), b.ID())
	c := NewCattail(DefaultSwayPreset, 1, epoch, WithID(42), WithEnabled(false))
	assert.Equal(t, uint64(42), c.ID())
	assert.False(t, c.Enabled())
}
