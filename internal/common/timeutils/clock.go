package timeutils

import (
	"sync"
	"time"
)

// Clock supplies the current wall-clock time in the monitor's zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// ZoneClock reads the system clock and converts it into a fixed location,
// independent of the host's local zone.
type ZoneClock struct {
	loc *time.Location
}

// NewZoneClock creates a clock bound to loc. A nil loc means UTC.
func NewZoneClock(loc *time.Location) *ZoneClock {
	if loc == nil {
		loc = time.UTC
	}
	return &ZoneClock{loc: loc}
}

func (c *ZoneClock) Now() time.Time {
	return time.Now().UTC().In(c.loc)
}

func (c *ZoneClock) Location() *time.Location {
	return c.loc
}

// ManualClock is a settable clock used to drive time-dependent code deterministically.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock frozen at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Location() *time.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Location()
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
