package kernel

import (
	"runtime"
	"sync/atomic"
)

// Event is a small fixed-size message passed from tick handlers and line
// interrupts to the main loop.
type Event struct {
	Kind uint8
	Arg  uint32
}

const mailboxSlots = 16

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// It is designed for bare-metal use: no allocations, busy-wait with Gosched().
//
// Each slot carries a sequence word: 2*lap while free for the producers of
// that lap, 2*lap+1 once written and waiting for the consumer.
type Mailbox struct {
	_       [0]func() // prevent accidental copying.
	head    atomic.Uint64
	tail    atomic.Uint64
	dropped atomic.Uint32
	slots   [mailboxSlots]mailboxSlot
}

type mailboxSlot struct {
	seq atomic.Uint64
	ev  Event
}

// TrySend attempts to enqueue an event, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(ev Event) bool {
	if mb.push(ev) {
		return true
	}
	mb.dropped.Add(1)
	return false
}

func (mb *Mailbox) push(ev Event) bool {
	for {
		head := mb.head.Load()
		sl := &mb.slots[head%mailboxSlots]
		lap := head / mailboxSlots * 2
		seq := sl.seq.Load()
		switch {
		case seq == lap:
			// Reserve the slot.
			if mb.head.CompareAndSwap(head, head+1) {
				sl.ev = ev
				sl.seq.Store(lap + 1)
				return true
			}
		case seq < lap:
			// The consumer has not drained the previous lap yet.
			return false
		}
	}
}

// Send enqueues an event, blocking until it succeeds.
func (mb *Mailbox) Send(ev Event) {
	for !mb.push(ev) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one event, returning false if empty.
func (mb *Mailbox) TryRecv() (Event, bool) {
	tail := mb.tail.Load()
	sl := &mb.slots[tail%mailboxSlots]
	lap := tail / mailboxSlots * 2
	if sl.seq.Load() != lap+1 {
		return Event{}, false
	}
	ev := sl.ev
	sl.seq.Store(lap + 2)
	mb.tail.Store(tail + 1)
	return ev, true
}

// Recv blocks until one event is available.
func (mb *Mailbox) Recv() Event {
	for {
		ev, ok := mb.TryRecv()
		if ok {
			return ev
		}
		runtime.Gosched()
	}
}

// Len returns the number of queued events.
func (mb *Mailbox) Len() int {
	return int(mb.head.Load() - mb.tail.Load())
}

// Dropped returns the number of events rejected by TrySend because the
// mailbox was full.
func (mb *Mailbox) Dropped() uint32 {
	return mb.dropped.Load()
}
