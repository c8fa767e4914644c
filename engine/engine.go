// Package engine drives the marsh: one update and one draw per window refresh, on the window's thread.
package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/engine/animator"
	"github.com/Carmen-Shannon/oxy-marsh/engine/input"
	"github.com/Carmen-Shannon/oxy-marsh/engine/profiler"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
	"github.com/Carmen-Shannon/oxy-marsh/engine/window"
	"github.com/schollz/progressbar/v3"
)

// ErrManualClockRequired is returned by RunFrames when the scene's animator is driven by the system clock.
var ErrManualClockRequired = errors.New("headless frames need a manual clock")

// engine implements the Engine interface.
type engine struct {
	running atomic.Bool
	quit    atomic.Bool

	closeOnce sync.Once

	window window.Window
	title  string
	scene  scene.Scene
	input  input.Handler

	// tasks carries work from other goroutines onto the frame thread.
	tasks chan func()

	profiler         *profiler.Profiler
	profilingEnabled bool
	progress         bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the frame loop and routes window events to the input handler.
type Engine interface {
	// Window returns the underlying window, nil in headless runs.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being driven.
	Scene() scene.Scene

	// Input returns the handler receiving window events.
	Input() input.Handler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Post queues fn to run on the frame thread before the next frame.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the work to run
	//
	// Returns:
	//   - bool: false if the queue was full and fn was dropped
	Post(fn func()) bool

	// Frame runs one refresh at now: queued work, then update and draw while animating,
	// or a single draw when a paused scene asked for a redraw.
	//
	// Parameters:
	//   - now: the frame time
	//
	// Returns:
	//   - bool: true if a frame was drawn
	//   - error: error from the renderer or the scene
	Frame(now time.Time) (bool, error)

	// RunFrames renders n frames headless, advancing the scene's manual clock by step before each.
	//
	// Parameters:
	//   - n: the number of frames
	//   - step: the simulated time between frames
	//
	// Returns:
	//   - int: the number of frames drawn
	//   - error: ErrManualClockRequired, or the first frame error
	RunFrames(n int, step time.Duration) (int, error)

	// Run starts the window loop (blocks until the window closes).
	Run()

	// Running reports whether Run is active.
	Running() bool

	// Quit stops the loop before the next frame and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A scene is required; the window is optional for headless use.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tasks:    make(chan func(), 16),
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.scene == nil {
		panic("engine: a scene is required")
	}
	if e.input == nil {
		e.input = input.NewHandler(e.scene, nil)
	}

	if e.window != nil {
		e.bindWindow()
	}
	return e
}

// bindWindow routes window events to the renderer and the input handler.
func (e *engine) bindWindow() {
	w := e.window
	w.SetResizeCallback(func(width, height int) {
		e.scene.Renderer().Resize(width, height)
		e.scene.RequestRedraw()
	})
	w.SetKeyDownCallback(func(keyCode uint32) {
		e.input.KeyDown(keyCode)
	})
	w.SetPointerCallbacks(e.input.PointerDown, e.input.PointerMove, e.input.PointerUp)
	w.SetRefreshCallback(e.refresh)
	e.title = w.Title()
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Input() input.Handler {
	return e.input
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run needs a window, use RunFrames for headless rendering")
	}
	e.running.Store(true)
	defer e.running.Store(false)
	e.scene.RequestRedraw()
	e.window.ProcessMessages()
	e.closeWindow()
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Quit() {
	e.quit.Store(true)
	if e.window != nil {
		e.window.Wake()
	}
}

func (e *engine) closeWindow() {
	if e.window == nil {
		return
	}
	e.closeOnce.Do(func() {
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	})
}

// refresh is the window's per-iteration callback. It reports whether more frames follow:
// false while the scene is paused with no redraw pending, so the window can wait for events.
// It recovers from a panic only to log it and close the window.
func (e *engine) refresh() (busy bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
			e.closeWindow()
			busy = true
		}
	}()

	if e.quit.Load() {
		e.closeWindow()
		return true
	}

	start := time.Now()
	if _, err := e.Frame(e.scene.Animator().Now()); err != nil {
		log.Printf("[Engine] %v", err)
	}
	if e.scene.Paused() {
		e.window.SetTitle(e.title + " (paused)")
	} else {
		e.window.SetTitle(e.title)
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	return !e.scene.Paused() || e.scene.RedrawPending()
}

func (e *engine) Post(fn func()) bool {
	select {
	case e.tasks <- fn:
		if e.window != nil {
			e.window.Wake()
		}
		return true
	default:
		log.Printf("[Engine] task queue full, dropping task")
		return false
	}
}

func (e *engine) drain() {
	for {
		select {
		case fn := <-e.tasks:
			fn()
		default:
			return
		}
	}
}

func (e *engine) Frame(now time.Time) (bool, error) {
	e.drain()

	sc := e.scene
	redraw := sc.TakeRedraw()
	if sc.Paused() {
		if !redraw {
			return false, nil
		}
	} else {
		sc.Update(now)
	}

	r := sc.Renderer()
	if err := r.BeginFrame(); err != nil {
		return false, fmt.Errorf("begin frame: %w", err)
	}
	err := sc.Draw()
	r.EndFrame()
	r.Present()

	if e.profilingEnabled {
		e.profiler.Tick(r.DrawCallCount())
	}
	if err != nil {
		return true, fmt.Errorf("draw %s: %w", sc.Name(), err)
	}
	return true, nil
}

func (e *engine) RunFrames(n int, step time.Duration) (drawn int, err error) {
	clock, ok := e.scene.Animator().Clock().(*animator.ManualClock)
	if !ok {
		return 0, ErrManualClockRequired
	}

	var bar *progressbar.ProgressBar
	if e.progress {
		bar = progressbar.Default(int64(n), "rendering")
		defer func() { _ = bar.Finish() }()
	}

	i := 0
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame %d recovered from panic: %v", i, r)
			err = fmt.Errorf("frame %d: %v", i, r)
		}
	}()

	for ; i < n; i++ {
		ok, ferr := e.Frame(clock.Advance(step))
		if ferr != nil {
			return drawn, fmt.Errorf("frame %d: %w", i, ferr)
		}
		if ok {
			drawn++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return drawn, nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
