// internal/sched/clock.go

package sched

import "fmt"

// SimClock follows the trace timestamps and counts handled events.
// It only moves forward.
type SimClock struct {
	now   Time
	count int64
}

// Advance moves the clock to t. Equal timestamps are fine, going back is not.
func (c *SimClock) Advance(t Time) error {
	if t < c.now {
		return fmt.Errorf("time %d after %d: %w", t, c.now, ErrTimeReversed)
	}
	c.now = t
	c.count++
	return nil
}

// Now returns the time of the last handled event.
func (c *SimClock) Now() Time { return c.now }

// Count returns the number of handled events.
func (c *SimClock) Count() int64 { return c.count }
