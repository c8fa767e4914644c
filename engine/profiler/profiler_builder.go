package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(p *Profiler)

// WithInterval sets how often statistics are logged.
//
// Parameters:
//   - d: the interval, ignored when not positive
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithTimeSource replaces time.Now, so headless runs report against their stepped clock.
//
// Parameters:
//   - now: the time source
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithTimeSource(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}
