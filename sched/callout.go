package sched

import "math/bits"

// MaxCallouts is the largest callout table the occupancy bitmap can track.
const MaxCallouts = 64

// CalloutID addresses one pending callout.
//
// The ID carries the slot generation, so an ID kept after its callout fired
// or was cancelled never matches a later registration in the same slot.
type CalloutID struct {
	slot uint8
	gen  uint32
}

// Valid reports whether the ID was returned by a successful registration.
func (id CalloutID) Valid() bool { return id.gen != 0 }

// Slot returns the slot index, or -1 for an invalid ID.
func (id CalloutID) Slot() int {
	if id.gen == 0 {
		return -1
	}
	return int(id.slot)
}

type callout struct {
	fn   Func
	key  uintptr
	fire uint32
	gen  uint32
}

// calloutTable is a fixed slot array plus an occupancy bitmap.
// Bit i set <=> slot i holds a pending callout.
type calloutTable struct {
	slots    []callout
	occupied uint64

	// examined marks slots already visited by the running service pass.
	// Claiming a slot clears its bit so a re-claimed slot is looked at again.
	examined uint64
}

func newCalloutTable(capacity int) calloutTable {
	return calloutTable{slots: make([]callout, capacity)}
}

// pending is derived from the bitmap; there is no separate counter.
func (t *calloutTable) pending() int {
	return bits.OnesCount64(t.occupied)
}

func (t *calloutTable) mask() uint64 {
	if len(t.slots) >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<len(t.slots) - 1
}

func (t *calloutTable) claim(fn Func, fire uint32) (CalloutID, bool) {
	if t.pending() >= len(t.slots) {
		return CalloutID{}, false
	}
	free := ^t.occupied & t.mask()
	if free == 0 {
		return CalloutID{}, false
	}
	i := bits.TrailingZeros64(free)
	bit := uint64(1) << i

	c := &t.slots[i]
	c.gen++
	if c.gen == 0 {
		c.gen++
	}
	c.fn = fn
	c.key = funcKey(fn)
	c.fire = fire

	t.occupied |= bit
	t.examined &^= bit
	return CalloutID{slot: uint8(i), gen: c.gen}, true
}

// find returns the lowest occupied slot registered with fn.
func (t *calloutTable) find(fn Func) int {
	key := funcKey(fn)
	if key == 0 {
		return -1
	}
	occ := t.occupied
	for occ != 0 {
		i := bits.TrailingZeros64(occ)
		occ &^= uint64(1) << i
		if t.slots[i].key == key {
			return i
		}
	}
	return -1
}

func (t *calloutTable) release(i int) {
	if i < 0 || i >= len(t.slots) {
		return
	}
	t.occupied &^= uint64(1) << i
}

func (t *calloutTable) releaseID(id CalloutID) {
	i := id.Slot()
	if i < 0 || i >= len(t.slots) {
		return
	}
	if t.occupied&(uint64(1)<<i) == 0 || t.slots[i].gen != id.gen {
		return
	}
	t.release(i)
}

// nextDue returns the lowest unexamined occupied slot due at tick and marks
// every slot it looked at as examined.
func (t *calloutTable) nextDue(tick uint32) int {
	cand := t.occupied &^ t.examined
	for cand != 0 {
		i := bits.TrailingZeros64(cand)
		bit := uint64(1) << i
		cand &^= bit
		t.examined |= bit
		if t.slots[i].fire == tick {
			return i
		}
	}
	return -1
}

// serviceCallouts fires every callout due at tick in ascending slot order
// and frees its slot after the handler returns. A slot claimed by a handler
// during the pass is serviced in the same pass only if it is due at tick.
func (s *Scheduler) serviceCallouts(st csState, tick uint32) csState {
	t := &s.callouts
	t.examined = 0
	for {
		i := t.nextDue(tick)
		if i < 0 {
			return st
		}
		c := &t.slots[i]
		fn, gen := c.fn, c.gen

		s.cs.exit(st)
		fn()
		st = s.cs.enter()

		// The handler may have cancelled this callout and the slot may have
		// been claimed again; only free it if it is still ours.
		if c.gen == gen {
			t.release(i)
		}
	}
}
