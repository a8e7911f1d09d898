//go:build !tinygo

package hal

import (
	"context"
	"sync"
	"time"
)

// hostTime delivers ticks through a single-slot channel. A tick that
// arrives while the previous one is still pending is dropped.
type hostTime struct {
	ch   chan uint64
	rate uint32

	mu  sync.Mutex
	seq uint64
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1), rate: 1}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }
func (t *hostTime) Rate() uint32         { return t.rate }

func (t *hostTime) now() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

// stepN emits n ticks and reports how many were dropped.
func (t *hostTime) stepN(n uint64) (dropped uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
			dropped++
		}
	}
	return dropped
}

// run emits ticks from a wall-clock ticker until ctx is done.
func (t *hostTime) run(ctx context.Context) {
	d := time.Millisecond / time.Duration(t.rate)
	if d <= 0 {
		d = time.Millisecond
	}
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.stepN(1)
		}
	}
}
