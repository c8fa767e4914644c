package camera

// StateBuilderOption is a functional option for configuring a State during construction.
type StateBuilderOption func(*state)

// WithSpinRate sets the idle spin rate in degrees per second.
//
// Parameters:
//   - rate: degrees per second, negative spins the other way
//
// Returns:
//   - StateBuilderOption: a function that sets the spin rate
func WithSpinRate(rate float32) StateBuilderOption {
	return func(st *state) {
		st.spin.Rate = rate
	}
}

// WithNudgeStep sets the distance one position nudge moves the world.
//
// Parameters:
//   - step: distance per nudge
//
// Returns:
//   - StateBuilderOption: a function that sets the nudge step
func WithNudgeStep(step float32) StateBuilderOption {
	return func(st *state) {
		st.nudgeStep = step
	}
}

// WithScaleBounds sets the scale step and the range scale nudges are clamped to.
//
// Parameters:
//   - step: scale change per nudge
//   - lo, hi: the clamp range
//
// Returns:
//   - StateBuilderOption: a function that sets the scale bounds
func WithScaleBounds(step, lo, hi float32) StateBuilderOption {
	return func(st *state) {
		if lo > hi {
			lo, hi = hi, lo
		}
		st.scaleStep, st.minScale, st.maxScale = step, lo, hi
	}
}

// WithShowGrid sets whether the ground grid is drawn.
//
// Parameters:
//   - show: true to draw the grid
//
// Returns:
//   - StateBuilderOption: a function that sets the grid toggle
func WithShowGrid(show bool) StateBuilderOption {
	return func(st *state) {
		st.showGrid = show
	}
}

// WithLowFidelity sets whether head and eye spheres are drawn as billboarded discs.
//
// Parameters:
//   - low: true for discs
//
// Returns:
//   - StateBuilderOption: a function that sets the fidelity toggle
func WithLowFidelity(low bool) StateBuilderOption {
	return func(st *state) {
		st.lowFidelity = low
	}
}

// WithSwayEnabled sets whether cattails start swaying.
//
// Parameters:
//   - enabled: true to sway
//
// Returns:
//   - StateBuilderOption: a function that sets the sway toggle
func WithSwayEnabled(enabled bool) StateBuilderOption {
	return func(st *state) {
		st.sway = enabled
	}
}
