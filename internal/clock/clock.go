// Package clock provides the scheduler's time source. All record timestamps
// are milliseconds relative to a scheduler epoch so that runs are comparable
// regardless of wall-clock start time.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Clock measures elapsed milliseconds since a fixed epoch.
type Clock struct {
	epoch time.Time
}

// New returns a Clock anchored at the current time.
func New() *Clock {
	return &Clock{epoch: Now()}
}

// At returns a Clock anchored at the supplied epoch.
func At(epoch time.Time) *Clock {
	return &Clock{epoch: epoch}
}

// Epoch returns the anchor time.
func (c *Clock) Epoch() time.Time { return c.epoch }

// Millis returns elapsed whole milliseconds since the epoch.
func (c *Clock) Millis() int64 {
	return Now().Sub(c.epoch).Milliseconds()
}
