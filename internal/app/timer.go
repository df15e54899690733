package app

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer is a stopwatch over a clock. The reference point is set when the timer
// is created and moved forward by every Tick.
type Timer struct {
	clock clock.Clock
	last  time.Time
}

// NewTimer starts a timer on c. A nil clock means the wall clock.
func NewTimer(c clock.Clock) *Timer {
	if c == nil {
		c = clock.New()
	}
	return &Timer{clock: c, last: c.Now()}
}

// Tick returns the time elapsed since the previous tick and resets the reference.
func (t *Timer) Tick() time.Duration {
	now := t.clock.Now()
	d := now.Sub(t.last)
	t.last = now
	return d
}

// Elapsed returns the time since the previous tick without resetting.
func (t *Timer) Elapsed() time.Duration {
	return t.clock.Since(t.last)
}
