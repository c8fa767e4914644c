package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsPerInterval(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProfiler(WithInterval(time.Second), WithTimeSource(func() time.Time { return now }))

	for range 19 {
		now = now.Add(50 * time.Millisecond)
		assert.False(t, p.Tick(80))
	}
	now = now.Add(50 * time.Millisecond)
	require.True(t, p.Tick(84))

	s := p.Last()
	assert.Equal(t, 20, s.FramesInSpan)
	assert.InDelta(t, 20, s.FPS, 0.01)
	assert.InDelta(t, (19*80+84)/20.0, s.DrawCalls, 1e-9)
	assert.Positive(t, s.HeapMB)

	now = now.Add(50 * time.Millisecond)
	assert.False(t, p.Tick(80), "counters restart after a report")
}
