package sched

import "sync/atomic"

// Clock is the dispatcher tick counter. It wraps silently on overflow.
type Clock struct {
	now atomic.Uint32
}

// Advance increments the counter by one.
func (c *Clock) Advance() { c.now.Add(1) }

// Now returns the current tick.
func (c *Clock) Now() uint32 { return c.now.Load() }

// Rate is the number of ticks per millisecond of the platform tick source.
type Rate uint32

// Ticks converts a millisecond interval to ticks.
func (r Rate) Ticks(ms uint32) uint32 {
	if r == 0 {
		return ms
	}
	return ms * uint32(r)
}
