package sched

// Mode selects whether a callback is serviced.
type Mode bool

const (
	Disabled Mode = false
	Enabled  Mode = true
)

func (m Mode) String() string {
	if m {
		return "enabled"
	}
	return "disabled"
}

// CallbackID addresses one registered callback.
type CallbackID struct {
	idx uint16 // index + 1; zero is the invalid ID
}

// Valid reports whether the ID was returned by a successful registration.
func (id CallbackID) Valid() bool { return id.idx != 0 }

// Index returns the registration index, or -1 for an invalid ID.
func (id CallbackID) Index() int { return int(id.idx) - 1 }

type callback struct {
	fn      Func
	key     uintptr
	enabled bool
	period  uint32
	next    uint32
}

// callbackTable is append-only: entries are never removed, only toggled.
type callbackTable struct {
	entries []callback
	count   int
}

func newCallbackTable(capacity int) callbackTable {
	return callbackTable{entries: make([]callback, capacity)}
}

func (t *callbackTable) add(fn Func, period, now uint32) (CallbackID, bool) {
	if t.count >= len(t.entries) {
		return CallbackID{}, false
	}
	i := t.count
	t.entries[i] = callback{
		fn:     fn,
		key:    funcKey(fn),
		period: period,
		next:   now + period,
	}
	t.count++
	return CallbackID{idx: uint16(i + 1)}, true
}

// find returns the first entry registered with fn.
func (t *callbackTable) find(fn Func) int {
	key := funcKey(fn)
	if key == 0 {
		return -1
	}
	for i := 0; i < t.count; i++ {
		if t.entries[i].key == key {
			return i
		}
	}
	return -1
}

func (t *callbackTable) setMode(i int, mode Mode, now uint32) {
	if i < 0 || i >= t.count {
		return
	}
	cb := &t.entries[i]
	cb.enabled = bool(mode)
	if mode {
		cb.next = now + cb.period
	}
}

func (t *callbackTable) enabledCount() int {
	n := 0
	for i := 0; i < t.count; i++ {
		if t.entries[i].enabled {
			n++
		}
	}
	return n
}

// service fires every enabled entry due at tick, in registration order.
// The critical section is released around each handler.
func (s *Scheduler) serviceCallbacks(st csState, tick uint32) csState {
	t := &s.callbacks
	for i := 0; i < t.count; i++ {
		cb := &t.entries[i]
		if !cb.enabled || cb.next != tick {
			continue
		}
		cb.next = tick + cb.period
		fn := cb.fn

		s.cs.exit(st)
		fn()
		st = s.cs.enter()
	}
	return st
}
