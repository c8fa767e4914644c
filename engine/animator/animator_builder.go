package animator

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithClock replaces the system clock, typically with a ManualClock for deterministic stepping.
//
// Parameters:
//   - c: the clock to read timestamps from
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the clock option to an animator
func WithClock(c Clock) AnimatorBuilderOption {
	return func(a *animator) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithPaused starts the animator in the paused state.
//
// Parameters:
//   - paused: true to start paused
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the paused option to an animator
func WithPaused(paused bool) AnimatorBuilderOption {
	return func(a *animator) {
		a.paused = paused
	}
}
