package engine

import "sync/atomic"

// Clock is a monotonic logical clock that stamps completion steps.
//
// Steps carry a strictly increasing seq from this clock instead of a
// wall-clock time, so replaying a problem reproduces the same history.
//
// Clock is safe for concurrent use, although a Session only calls it from
// the goroutine running completion.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock that continues after start.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
