package testutil

import (
	"sync"
	"time"
)

// Epoch is the first instant returned by a StepClock.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// StepClock is a deterministic clock for tests: every call to Now advances
// it by a fixed step, so a measured duration equals the step times the
// number of calls in between.
//
// StepClock can be reset for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	step  time.Duration
	calls int64
}

// NewStepClock creates a clock whose first Now returns Epoch.
func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{step: step}
}

// Now returns Epoch plus step times the number of earlier calls.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := Epoch.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *StepClock) Calls() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock so the next Now returns Epoch.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = 0
}
