package input

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/panel"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScene(t *testing.T) scene.Scene {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeRecording, nil, renderer.WithSize(800, 600))
	clock := animator.NewManualClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	sc, err := scene.NewScene(r,
		scene.WithSeed(3),
		scene.WithCattails(2),
		scene.WithDragonflies(1),
		scene.WithShapeWorkers(1),
		scene.WithAnimator(animator.NewAnimator(animator.WithClock(clock))),
	)
	require.NoError(t, err)
	return sc
}

func TestKeyTableIsUnambiguous(t *testing.T) {
	h := NewHandler(newScene(t), nil)
	seen := make(map[uint32]string)
	for _, c := range h.Commands() {
		require.NotEmpty(t, c.Keys, c.Label)
		assert.NotEmpty(t, c.Description, c.Label)
		for _, k := range c.Keys {
			prev, dup := seen[k]
			assert.False(t, dup, "key %d bound to %q and %q", k, prev, c.Label)
			seen[k] = c.Label
		}
	}
	assert.Len(t, h.HelpLines(), len(h.Commands()))
}

func TestUnknownKeyIsIgnored(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)
	x, y, z := sc.State().Position()
	assert.False(t, h.KeyDown(common.KeySpace))
	nx, ny, nz := sc.State().Position()
	assert.Equal(t, [3]float32{x, y, z}, [3]float32{nx, ny, nz})
}

func TestNudgeKeys(t *testing.T) {
	tests := []struct {
		name   string
		keys   []uint32
		dx, dy float32
	}{
		{"up", []uint32{common.KeyW, common.KeyUp}, 0, -0.01},
		{"left", []uint32{common.KeyA, common.KeyLeft}, 0.01, 0},
		{"down", []uint32{common.KeyS, common.KeyDown}, 0, 0.01},
		{"right", []uint32{common.KeyD, common.KeyRight}, -0.01, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newScene(t)
			h := NewHandler(sc, nil)
			for _, k := range tt.keys {
				require.True(t, h.KeyDown(k))
			}
			x, y, _ := sc.State().Position()
			assert.InDelta(t, 2*tt.dx, x, 1e-6)
			assert.InDelta(t, 2*tt.dy, y, 1e-6)
		})
	}
}

func TestScaleKeys(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)
	sx, _, _ := sc.State().Scale()

	require.True(t, h.KeyDown(common.KeyEqual))
	require.True(t, h.KeyDown(common.KeyKPAdd))
	grown, _, _ := sc.State().Scale()
	assert.InDelta(t, sx+0.1, grown, 1e-6)

	require.True(t, h.KeyDown(common.KeyMinus))
	require.True(t, h.KeyDown(common.KeyKPSubtract))
	back, _, _ := sc.State().Scale()
	assert.InDelta(t, sx, back, 1e-6)
}

func TestDigitKeysSetSwayPreset(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)

	require.True(t, h.KeyDown(common.Key3))
	assert.Equal(t, float32(4), sc.SwayPreset().Max)
	assert.InDelta(t, 2.4, sc.SwayPreset().Rate, 1e-6)

	require.True(t, h.KeyDown(common.Key0))
	assert.Equal(t, float32(11), sc.SwayPreset().Max)
	assert.InDelta(t, 8.0, sc.SwayPreset().Rate, 1e-6)
}

func TestToggleAnimationRequestsRedraw(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)
	require.True(t, h.KeyDown(common.KeyP))
	assert.True(t, sc.Paused())
	assert.True(t, sc.TakeRedraw())
	require.True(t, h.KeyDown(common.KeyP))
	assert.False(t, sc.Paused())
}

func TestEntityKeys(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)

	h.KeyDown(common.KeyC)
	assert.Len(t, sc.Cattails(), 3)
	h.KeyDown(common.KeyV)
	h.KeyDown(common.KeyV)
	assert.Len(t, sc.Cattails(), 1)

	h.KeyDown(common.KeyF)
	assert.Len(t, sc.Dragonflies(), 2)
	h.KeyDown(common.KeyG)
	assert.Len(t, sc.Dragonflies(), 1)
}

func TestResetKey(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)
	h.KeyDown(common.KeyD)
	h.KeyDown(common.KeyR)
	x, _, _ := sc.State().Position()
	assert.Zero(t, x)
}

func TestDisplayToggles(t *testing.T) {
	sc := newScene(t)
	p := panel.NewPanel()
	scene.BindPanel(p, sc)
	h := NewHandler(sc, p)
	st := sc.State()

	require.True(t, h.KeyDown(common.KeySlash))
	assert.True(t, st.HelpVisible())

	require.True(t, h.KeyDown(common.KeyPeriod))
	assert.True(t, p.Open())
	assert.True(t, st.PanelOpen())
	require.True(t, h.KeyDown(common.KeyPeriod))
	assert.False(t, p.Open())
	assert.False(t, st.PanelOpen())

	grid := st.ShowGrid()
	h.KeyDown(common.KeyH)
	assert.Equal(t, !grid, st.ShowGrid())

	low := st.LowFidelity()
	h.KeyDown(common.KeyL)
	assert.Equal(t, !low, st.LowFidelity())
}

func TestPointerDragRotates(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil)

	h.PointerDown(400, 300)
	h.PointerMove(440, 300)
	assert.True(t, h.Drag().Dragging())
	h.PointerUp(440, 300)
	assert.False(t, h.Drag().Dragging())

	dx, dy := sc.State().DragTotals()
	assert.InDelta(t, 0.1, dx, 1e-6)
	assert.Zero(t, dy)
	_, ry, _ := sc.State().Rotation()
	assert.InDelta(t, -4, ry, 1e-4)

	px, py := sc.State().PointOfInterest()
	assert.InDelta(t, 0.1, px, 1e-6)
	assert.Zero(t, py)
}

func TestPointerIgnoredWhilePaused(t *testing.T) {
	sc := newScene(t)
	h := NewHandler(sc, nil, WithSurfaceSize(func() (int, int) { return 100, 100 }))
	sc.SetAnimating(false)

	h.PointerDown(0, 0)
	h.PointerMove(100, 100)
	h.PointerUp(100, 100)

	assert.False(t, h.Drag().Dragging())
	dx, dy := sc.State().DragTotals()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
