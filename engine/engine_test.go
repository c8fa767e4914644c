package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/common"
	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/renderer"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
	"github.com/Carmen-Shannon/oxy-marsh/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWindow records what the engine binds and asks of its window.
type stubWindow struct {
	refresh func() bool
	title   string
	wakes   int
	closed  int
}

var _ window.Window = &stubWindow{}

func (w *stubWindow) SetRefreshCallback(callback func() bool)               { w.refresh = callback }
func (w *stubWindow) Wake()                                                 { w.wakes++ }
func (w *stubWindow) SetResizeCallback(func(width, height int))             {}
func (w *stubWindow) SetKeyDownCallback(func(keyCode uint32))               {}
func (w *stubWindow) SetPointerCallbacks(down, move, up func(x, y float64)) {}
func (w *stubWindow) SetTitle(title string)                                 { w.title = title }
func (w *stubWindow) Title() string                                         { return w.title }
func (w *stubWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor            { return nil }
func (w *stubWindow) IsRunning() bool                                       { return w.closed == 0 }
func (w *stubWindow) Close() error                                          { w.closed++; return nil }
func (w *stubWindow) ProcessMessages()                                      {}
func (w *stubWindow) Width() int                                            { return 640 }
func (w *stubWindow) Height() int                                           { return 480 }

func newHeadless(t *testing.T, clock animator.Clock) (Engine, renderer.RecordingRendererBackend) {
	t.Helper()
	sc, rec := newScene(t, clock)
	return NewEngine(WithScene(sc)), rec
}

func newScene(t *testing.T, clock animator.Clock) (scene.Scene, renderer.RecordingRendererBackend) {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeRecording, nil, renderer.WithSize(640, 480))
	rec, ok := r.Backend().(renderer.RecordingRendererBackend)
	require.True(t, ok)
	sc, err := scene.NewScene(r,
		scene.WithSeed(5),
		scene.WithCattails(2),
		scene.WithDragonflies(1),
		scene.WithShapeWorkers(1),
		scene.WithAnimator(animator.NewAnimator(animator.WithClock(clock))),
	)
	require.NoError(t, err)
	return sc, rec
}

func TestRunFramesDrawsEveryFrame(t *testing.T) {
	clock := animator.NewManualClock(time.Unix(0, 0))
	e, rec := newHeadless(t, clock)

	drawn, err := e.RunFrames(30, 20*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 30, drawn)
	assert.Equal(t, 30, rec.Frames())
	assert.Equal(t, 30, rec.Presented())
	assert.Equal(t, time.Unix(0, 0).Add(600*time.Millisecond), clock.Now())
	assert.InDelta(t, 27, e.Scene().State().Spin(), 1e-3)
}

func TestRunFramesNeedsManualClock(t *testing.T) {
	e, _ := newHeadless(t, animator.SystemClock{})
	_, err := e.RunFrames(1, time.Millisecond)
	assert.ErrorIs(t, err, ErrManualClockRequired)
}

func TestPausedSceneDrawsOnlyOnRequest(t *testing.T) {
	clock := animator.NewManualClock(time.Unix(0, 0))
	e, rec := newHeadless(t, clock)
	sc := e.Scene()

	sc.SetAnimating(false)
	sc.TakeRedraw()
	drawn, err := e.RunFrames(5, time.Second)
	require.NoError(t, err)
	assert.Zero(t, drawn)

	sc.Reset()
	drawn, err = e.RunFrames(5, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, drawn)
	assert.Equal(t, 1, rec.Frames())
}

func TestKeyWhilePausedRedraws(t *testing.T) {
	clock := animator.NewManualClock(time.Unix(0, 0))
	e, rec := newHeadless(t, clock)

	require.True(t, e.Input().KeyDown(common.KeyP))
	drawn, err := e.Frame(clock.Now())
	require.NoError(t, err)
	assert.True(t, drawn)

	drawn, err = e.Frame(clock.Advance(time.Second))
	require.NoError(t, err)
	assert.False(t, drawn)

	require.True(t, e.Input().KeyDown(common.KeyC))
	drawn, err = e.Frame(clock.Advance(time.Second))
	require.NoError(t, err)
	assert.True(t, drawn)
	assert.Equal(t, 2, rec.Frames())
}

func TestPostRunsOnNextFrame(t *testing.T) {
	clock := animator.NewManualClock(time.Unix(0, 0))
	e, _ := newHeadless(t, clock)

	ran := 0
	require.True(t, e.Post(func() { ran++ }))
	require.True(t, e.Post(func() { e.Scene().State().SetShowGrid(true) }))
	assert.Zero(t, ran)

	_, err := e.Frame(clock.Advance(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
	assert.True(t, e.Scene().State().ShowGrid())
}

func TestPausedRefreshLetsWindowIdle(t *testing.T) {
	clock := animator.NewManualClock(time.Unix(0, 0))
	sc, rec := newScene(t, clock)
	w := &stubWindow{title: "Marsh"}
	e := NewEngine(WithScene(sc), WithWindow(w))
	require.NotNil(t, w.refresh)

	assert.True(t, w.refresh(), "animating scene keeps the loop busy")
	assert.Equal(t, "Marsh", w.title)

	sc.SetAnimating(false)
	sc.TakeRedraw()
	assert.False(t, w.refresh())
	assert.Equal(t, "Marsh (paused)", w.title)
	frames := rec.Frames()

	// a redraw requested while idle is drawn on the next refresh, after which the loop idles again
	sc.RequestRedraw()
	assert.False(t, w.refresh())
	assert.Equal(t, frames+1, rec.Frames())

	ran := false
	require.True(t, e.Post(func() { ran = true }))
	assert.Equal(t, 1, w.wakes)
	w.refresh()
	assert.True(t, ran)

	e.Quit()
	assert.Equal(t, 2, w.wakes)
	assert.True(t, w.refresh())
	assert.Equal(t, 1, w.closed)
}

func TestNewEngineNeedsScene(t *testing.T) {
	assert.Panics(t, func() { NewEngine() })
}
