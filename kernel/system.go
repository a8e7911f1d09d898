package kernel

import (
	"runtime"
	"sync/atomic"

	"juicy/sched"
)

// System connects a platform tick stream to the dispatcher.
//
// The tick source numbers its ticks and never queues more than it can
// deliver; a gap in the sequence means the dispatcher overran and those
// ticks were lost. Lost ticks are counted, never replayed.
type System struct {
	sched *sched.Scheduler

	last     atomic.Uint64
	serviced atomic.Uint64
	lost     atomic.Uint64
	rejected atomic.Uint64

	// OnLost, if set, is called on the tick path with the size of each gap.
	OnLost func(n uint64)
}

// NewSystem creates a kernel instance driving s.
func NewSystem(s *sched.Scheduler) *System {
	return &System{sched: s}
}

// Scheduler returns the dispatcher driven by this system.
func (s *System) Scheduler() *sched.Scheduler { return s.sched }

// StartTick consumes the tick stream on its own goroutine until ch closes.
// done, if not nil, is closed once the stream ends.
func (s *System) StartTick(ch <-chan uint64, done chan<- struct{}) {
	go func() {
		if done != nil {
			defer close(done)
		}
		for seq := range ch {
			s.TickTo(seq)
		}
	}()
}

// TickTo services the tick numbered seq. Sequence numbers at or below the
// last serviced one are ignored.
func (s *System) TickTo(seq uint64) {
	last := s.last.Load()
	if seq <= last {
		return
	}
	if gap := seq - last - 1; gap > 0 {
		s.lost.Add(gap)
		if s.OnLost != nil {
			s.OnLost(gap)
		}
	}
	s.last.Store(seq)

	if err := s.sched.Tick(); err != nil {
		s.rejected.Add(1)
		return
	}
	s.serviced.Add(1)
}

// Ticks returns the number of ticks serviced by the dispatcher.
func (s *System) Ticks() uint64 {
	return s.serviced.Load()
}

// Lost returns the number of ticks dropped by the source while the
// dispatcher was busy.
func (s *System) Lost() uint64 {
	return s.lost.Load()
}

// Rejected returns the number of ticks refused because a tick was already
// being serviced.
func (s *System) Rejected() uint64 {
	return s.rejected.Load()
}

// Yield yields execution to let other tasks run.
func (s *System) Yield() {
	runtime.Gosched()
}
