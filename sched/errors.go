package sched

import "errors"

var (
	// ErrFull is returned when a table has no free entry.
	ErrFull = errors.New("sched: table full")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("sched: nil handler")

	// ErrZeroPeriod is returned when a callback is registered with period 0.
	ErrZeroPeriod = errors.New("sched: zero period")

	// ErrReentrant is returned by Tick when called while a tick is being serviced.
	ErrReentrant = errors.New("sched: tick re-entered")
)
