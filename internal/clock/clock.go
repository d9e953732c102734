// Package clock provides the time sources the engine runs on.
package clock

import (
	"sync"
	"time"
)

// System reads the wall clock in a fixed location.
type System struct {
	Location *time.Location
}

// Now returns the current time in the configured location, UTC when unset.
func (c System) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

// Fake is a manually driven clock for deterministic cycles in tests and
// replays. It is safe for concurrent use.
type Fake struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewFake returns a Fake frozen at now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// NewTicking returns a Fake that moves forward by step on every Now call,
// so consecutive readings are strictly ordered.
func NewTicking(now time.Time, step time.Duration) *Fake {
	return &Fake{now: now, step: step}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// Set moves the clock to now.
func (c *Fake) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
