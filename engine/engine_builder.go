package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-marsh/engine/input"
	"github.com/Carmen-Shannon/oxy-marsh/engine/profiler"
	"github.com/Carmen-Shannon/oxy-marsh/engine/scene"
	"github.com/Carmen-Shannon/oxy-marsh/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		if p != nil {
			e.profiler = p
		}
	}
}

// WithWindow sets the window the engine draws into and takes events from.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene the engine drives.
//
// Parameters:
//   - s: the Scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithInput sets the handler receiving window events. Defaults to a handler without a panel.
//
// Parameters:
//   - h: the input handler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(h input.Handler) EngineBuilderOption {
	return func(e *engine) {
		e.input = h
	}
}

// WithProgressBar shows a progress bar on stdout while RunFrames renders.
//
// Parameters:
//   - show: true to show the bar
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProgressBar(show bool) EngineBuilderOption {
	return func(e *engine) {
		e.progress = show
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
