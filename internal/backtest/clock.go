package backtest

import "time"

// SimClock is the simulated time source handed to the engine during a
// backtest. The driver sets it to each bar's date before the iteration, so
// the engine's sentiment window follows historical time instead of the wall
// clock.
type SimClock struct {
	t time.Time
}

// NewSimClock creates a clock starting at the given time.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{t: start}
}

// Now returns the current simulated time.
func (c *SimClock) Now() time.Time { return c.t }

// Set advances (or rewinds) the simulated time.
func (c *SimClock) Set(t time.Time) { c.t = t }
