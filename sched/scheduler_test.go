package sched

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTickCallbacksBeforeCallouts(t *testing.T) {
	s := mustNew(t, Config{})
	var order []string
	cbID, _ := s.RegisterCallback(func() { order = append(order, "callback") }, 4)
	_, _ = s.RegisterCallout(func() { order = append(order, "callout") }, 4)
	s.SetCallbackModeID(cbID, Enabled)

	tickTo(t, s, 4)
	if diff := cmp.Diff([]string{"callback", "callout"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTickRejectsReentry(t *testing.T) {
	s := mustNew(t, Config{})
	var nested error
	_, _ = s.RegisterCallout(func() { nested = s.Tick() }, 1)

	if err := s.Tick(); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if !errors.Is(nested, ErrReentrant) {
		t.Fatalf("nested Tick() = %v, want ErrReentrant", nested)
	}
	if got := s.Now(); got != 1 {
		t.Fatalf("Now() = %d, want 1", got)
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick() after nested attempt = %v", err)
	}
}

func TestCallbackRegistersCallout(t *testing.T) {
	s := mustNew(t, Config{})
	r := &recorder{s: s}
	follow := r.fn("callout")
	id, _ := s.RegisterCallback(func() {
		if _, err := s.RegisterCallout(follow, 0); err != nil {
			t.Errorf("RegisterCallout() = %v", err)
		}
	}, 5)
	s.SetCallbackModeID(id, Enabled)

	// A zero-delay callout registered by a callback is due on the same tick
	// and the callout pass runs after the callback pass.
	tickTo(t, s, 5)
	if diff := cmp.Diff([]string{"callout@5"}, r.fires); diff != "" {
		t.Fatalf("fires mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentRegistration(t *testing.T) {
	s := mustNew(t, Config{Callbacks: 4, Callouts: 8})

	var mu sync.Mutex
	fired := 0
	handler := func() {
		mu.Lock()
		fired++
		mu.Unlock()
	}
	id, _ := s.RegisterCallback(handler, 1)
	s.SetCallbackModeID(id, Enabled)

	const workers = 4
	var wg sync.WaitGroup
	wg.Add(workers)
	stop := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				cid, err := s.RegisterCallout(handler, 2)
				if err != nil && !errors.Is(err, ErrFull) {
					t.Errorf("RegisterCallout() = %v", err)
					return
				}
				if err == nil && cid.Slot()%2 == 0 {
					s.CancelCalloutID(cid)
				}
				s.SetCallbackModeID(id, Enabled)
				_ = s.Stats()
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		if err := s.Tick(); err != nil {
			t.Fatalf("Tick() = %v", err)
		}
	}
	close(stop)
	wg.Wait()

	st := s.Stats()
	if st.PendingCallouts > st.CalloutCap {
		t.Fatalf("PendingCallouts = %d exceeds cap %d", st.PendingCallouts, st.CalloutCap)
	}
	if st.Tick != 2000 {
		t.Fatalf("Tick = %d, want 2000", st.Tick)
	}
}
