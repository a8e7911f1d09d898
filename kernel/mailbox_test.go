package kernel

import (
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	var mb Mailbox

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	var mb Mailbox

	for i := 0; i < mailboxSlots; i++ {
		if ok := mb.TrySend(Event{Kind: 1, Arg: uint32(i)}); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(Event{Kind: 2}); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}
	if got := mb.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}

	for i := 0; i < mailboxSlots; i++ {
		ev, ok := mb.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
		if ev.Arg != uint32(i) {
			t.Fatalf("TryRecv() Arg = %d, want %d", ev.Arg, i)
		}
	}
	if got := mb.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}

func TestMailboxWrapsLaps(t *testing.T) {
	var mb Mailbox

	for i := 0; i < mailboxSlots*5; i++ {
		if !mb.TrySend(Event{Arg: uint32(i)}) {
			t.Fatalf("TrySend() failed at %d", i)
		}
		ev, ok := mb.TryRecv()
		if !ok || ev.Arg != uint32(i) {
			t.Fatalf("TryRecv() = (%v, %v), want Arg %d", ev, ok, i)
		}
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	var mb Mailbox

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				mb.Send(Event{Kind: 1, Arg: uint32(producerID*perProd + i)})
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		ev := mb.Recv()
		if ev.Kind != 1 {
			t.Fatalf("Recv() Kind = %d, want 1", ev.Kind)
		}
		if int(ev.Arg) >= total {
			t.Fatalf("Recv() id = %d, want < %d", ev.Arg, total)
		}
		if seen[ev.Arg] {
			t.Fatalf("Recv() duplicate id %d", ev.Arg)
		}
		seen[ev.Arg] = true
	}

	wg.Wait()
	if got := mb.Dropped(); got != 0 {
		t.Fatalf("Dropped() = %d, want 0 for blocking sends", got)
	}
}
