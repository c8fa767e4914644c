package animator

import (
	"sync"
	"time"
)

// Clock supplies wall-clock timestamps to the animation system.
type Clock interface {
	// Now returns the current time.
	//
	// Returns:
	//   - time.Time: the current timestamp
	Now() time.Time
}

// SystemClock reads the process wall clock.
type SystemClock struct{}

var _ Clock = SystemClock{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. Headless runs and tests use it to step animation deterministically.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ Clock = &ManualClock{}

// NewManualClock creates a ManualClock frozen at start.
//
// Parameters:
//   - start: the initial timestamp
//
// Returns:
//   - *ManualClock: the new clock
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
