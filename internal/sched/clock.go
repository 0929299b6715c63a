package sched

import (
	"sync/atomic"
	"time"
)

// Time is a tick count. It wraps; compare with Elapsed, never with < or >.
type Time uint32

// Second is the number of ticks per second.
const Second Time = 125

// Elapsed returns the ticks from since to now.
// Unsigned subtraction keeps the result correct across one wraparound.
func Elapsed(since, now Time) Time {
	return now - since
}

// Ticks converts a duration to ticks, rounding up so a positive duration is never zero.
func Ticks(d time.Duration) Time {
	if d <= 0 {
		return 0
	}
	per := time.Second / time.Duration(Second)
	return Time((d + per - 1) / per)
}

// Duration converts ticks back to wall time.
func (t Time) Duration() time.Duration {
	return time.Duration(t) * time.Second / time.Duration(Second)
}

// Clock supplies the current tick count.
type Clock interface {
	Now() Time
}

// SystemClock counts ticks from the last Reset using the monotonic clock.
type SystemClock struct {
	start atomic.Pointer[time.Time]
}

func NewSystemClock() *SystemClock {
	c := &SystemClock{}
	c.Reset()
	return c
}

// Reset restarts the tick count at zero.
func (c *SystemClock) Reset() {
	now := time.Now()
	c.start.Store(&now)
}

func (c *SystemClock) Now() Time {
	d := time.Since(*c.start.Load())
	return Time(d / (time.Second / time.Duration(Second)))
}

// ManualClock only moves when told to. Used by tests.
type ManualClock struct {
	now atomic.Uint32
}

func (c *ManualClock) Now() Time { return Time(c.now.Load()) }

// Advance moves the clock forward by d ticks.
func (c *ManualClock) Advance(d Time) { c.now.Add(uint32(d)) }

// Set places the clock at t.
func (c *ManualClock) Set(t Time) { c.now.Store(uint32(t)) }

// Reset places the clock at zero.
func (c *ManualClock) Reset() { c.now.Store(0) }
