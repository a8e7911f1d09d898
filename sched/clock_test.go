package sched

import (
	"math"
	"testing"
)

func TestClockCountsTicks(t *testing.T) {
	s := mustNew(t, Config{})
	for i := 0; i < 1000; i++ {
		if err := s.Tick(); err != nil {
			t.Fatalf("Tick() = %v, want nil", err)
		}
	}
	if got := s.Now(); got != 1000 {
		t.Fatalf("Now() = %d, want 1000", got)
	}
}

func TestClockWraps(t *testing.T) {
	s := mustNew(t, Config{})
	s.clock.now.Store(math.MaxUint32 - 1)

	_ = s.Tick()
	if got := s.Now(); got != math.MaxUint32 {
		t.Fatalf("Now() = %d, want %d", got, uint32(math.MaxUint32))
	}
	_ = s.Tick()
	if got := s.Now(); got != 0 {
		t.Fatalf("Now() after wrap = %d, want 0", got)
	}
}

func TestCallbackAcrossWrap(t *testing.T) {
	s := mustNew(t, Config{})
	s.clock.now.Store(math.MaxUint32 - 2)

	var fired []uint32
	fn := func() { fired = append(fired, s.Now()) }
	if _, err := s.RegisterCallback(fn, 4); err != nil {
		t.Fatalf("RegisterCallback() = %v", err)
	}
	s.SetCallbackMode(fn, Enabled)

	for i := 0; i < 8; i++ {
		_ = s.Tick()
	}
	want := []uint32{1, 5}
	if len(fired) != len(want) || fired[0] != want[0] || fired[1] != want[1] {
		t.Fatalf("fired at %v, want %v", fired, want)
	}
}

func TestRateTicks(t *testing.T) {
	if got := Rate(2).Ticks(50); got != 100 {
		t.Fatalf("Rate(2).Ticks(50) = %d, want 100", got)
	}
	if got := Rate(0).Ticks(7); got != 7 {
		t.Fatalf("Rate(0).Ticks(7) = %d, want 7", got)
	}
}

func mustNew(t *testing.T, cfg Config) *Scheduler {
	t.Helper()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return s
}

func tickTo(t *testing.T, s *Scheduler, tick uint32) {
	t.Helper()
	for s.Now() != tick {
		if err := s.Tick(); err != nil {
			t.Fatalf("Tick() = %v", err)
		}
	}
}
