package kernel

import (
	"testing"

	"juicy/sched"
)

func newTestSystem(t *testing.T) *System {
	t.Helper()
	s, err := sched.New(sched.Config{})
	if err != nil {
		t.Fatalf("sched.New() = %v", err)
	}
	return NewSystem(s)
}

func TestSystemTickToCountsLost(t *testing.T) {
	sys := newTestSystem(t)

	var gaps []uint64
	sys.OnLost = func(n uint64) { gaps = append(gaps, n) }

	sys.TickTo(1)
	sys.TickTo(2)
	sys.TickTo(6) // 3, 4, 5 dropped by the source
	sys.TickTo(6) // duplicate
	sys.TickTo(4) // stale

	if got := sys.Ticks(); got != 3 {
		t.Fatalf("Ticks() = %d, want 3", got)
	}
	if got := sys.Lost(); got != 3 {
		t.Fatalf("Lost() = %d, want 3", got)
	}
	if len(gaps) != 1 || gaps[0] != 3 {
		t.Fatalf("OnLost gaps = %v, want [3]", gaps)
	}
	// Lost ticks are not replayed: the dispatcher clock only advanced 3 times.
	if got := sys.Scheduler().Now(); got != 3 {
		t.Fatalf("Scheduler().Now() = %d, want 3", got)
	}
}

func TestSystemNoBackfill(t *testing.T) {
	sys := newTestSystem(t)
	s := sys.Scheduler()

	fired := 0
	id, err := s.RegisterCallback(func() { fired++ }, 2)
	if err != nil {
		t.Fatalf("RegisterCallback() = %v", err)
	}
	s.SetCallbackModeID(id, sched.Enabled)

	// Source ticks 1..10 with 2..9 lost: the dispatcher sees two ticks, so
	// the callback (due at dispatcher tick 2) fires exactly once.
	sys.TickTo(1)
	sys.TickTo(10)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if got := sys.Lost(); got != 8 {
		t.Fatalf("Lost() = %d, want 8", got)
	}
}

func TestSystemStartTick(t *testing.T) {
	sys := newTestSystem(t)
	ch := make(chan uint64)
	done := make(chan struct{})
	sys.StartTick(ch, done)

	for i := uint64(1); i <= 50; i++ {
		ch <- i
	}
	close(ch)
	<-done

	if got := sys.Ticks(); got != 50 {
		t.Fatalf("Ticks() = %d, want 50", got)
	}
}

func TestSystemRejectsNestedTick(t *testing.T) {
	sys := newTestSystem(t)
	s := sys.Scheduler()
	_, _ = s.RegisterCallout(func() { sys.TickTo(2) }, 1)

	sys.TickTo(1)
	if got := sys.Rejected(); got != 1 {
		t.Fatalf("Rejected() = %d, want 1", got)
	}
	if got := s.Now(); got != 1 {
		t.Fatalf("Now() = %d, want 1", got)
	}
}
