// Package animator advances time-integrated animation state. Every animated quantity keeps its own
// last-update timestamp; the Animator only tracks which quantities exist and whether time is flowing.
package animator

import (
	"slices"
	"sync"
	"time"
)

// animator is the implementation of the Animator interface.
type animator struct {
	mu      sync.Mutex
	clock   Clock
	paused  bool
	entries []Timed
}

// Animator owns the pause state of a scene and the registry of its timed quantities.
//
// While paused, timestamps are left alone. Resume restamps every registered quantity with the
// resume time so the first tick afterwards does not integrate the paused interval.
type Animator interface {
	// Clock returns the clock used for timestamps.
	//
	// Returns:
	//   - Clock: the animator's clock
	Clock() Clock

	// Now is shorthand for Clock().Now().
	//
	// Returns:
	//   - time.Time: the current timestamp
	Now() time.Time

	// Register adds quantities to the registry. Already registered quantities are skipped.
	//
	// Parameters:
	//   - entries: the quantities to track
	Register(entries ...Timed)

	// Unregister removes a quantity from the registry.
	//
	// Parameters:
	//   - entry: the quantity to forget
	//
	// Returns:
	//   - bool: true if the quantity was registered
	Unregister(entry Timed) bool

	// Len returns the number of registered quantities.
	//
	// Returns:
	//   - int: the registry size
	Len() int

	// Paused reports whether animation is stopped.
	//
	// Returns:
	//   - bool: true while paused
	Paused() bool

	// Pause stops animation. Timestamps are not touched.
	Pause()

	// Resume restarts animation and resets the timestamp of every registered quantity to now.
	//
	// Returns:
	//   - time.Time: the resume timestamp
	Resume() time.Time

	// Toggle pauses a running animator or resumes a paused one.
	//
	// Returns:
	//   - bool: true if the animator is running afterwards
	Toggle() bool

	// Restamp resets the timestamps of the given quantities to now without changing the pause state.
	//
	// Parameters:
	//   - entries: the quantities to restamp
	Restamp(entries ...Timed)
}

var _ Animator = &animator{}

// NewAnimator creates a running Animator on the system clock.
//
// Parameters:
//   - options: functional options for clock selection and initial state
//
// Returns:
//   - Animator: the new animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		clock:   SystemClock{},
		entries: make([]Timed, 0, 32),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) Clock() Clock {
	return a.clock
}

func (a *animator) Now() time.Time {
	return a.clock.Now()
}

func (a *animator) Register(entries ...Timed) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range entries {
		if e == nil || slices.Contains(a.entries, e) {
			continue
		}
		a.entries = append(a.entries, e)
	}
}

func (a *animator) Unregister(entry Timed) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	i := slices.Index(a.entries, entry)
	if i < 0 {
		return false
	}
	a.entries = slices.Delete(a.entries, i, i+1)
	return true
}

func (a *animator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *animator) Paused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *animator) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused = true
}

func (a *animator) Resume() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.clock.Now()
	for _, e := range a.entries {
		e.ResetTimestamp(now)
	}
	a.paused = false
	return now
}

func (a *animator) Toggle() bool {
	if a.Paused() {
		a.Resume()
		return true
	}
	a.Pause()
	return false
}

func (a *animator) Restamp(entries ...Timed) {
	now := a.clock.Now()
	for _, e := range entries {
		e.ResetTimestamp(now)
	}
}
