package ports

import "time"

// Clock supplies the current time. Live mode uses the wall clock; the
// backtest driver supplies the simulated bar time, so the same engine code
// runs identically in both modes.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }
