package testutil

import (
	"sync"
	"time"
)

// StepClock hands out times that advance by a fixed step on every call.
//
// Log keys derived from a StepClock are reproducible, which keeps golden
// traces stable across runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	n     int64
}

// NewStepClock creates a clock whose first Next returns start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{start: start, step: step}
}

// Next returns the current time and advances the clock by one step.
func (c *StepClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.n) * c.step)
	c.n++
	return t
}

// Reset rewinds the clock so the next call to Next returns start again.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
