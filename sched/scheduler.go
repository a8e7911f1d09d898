package sched

import "fmt"

const (
	DefaultCallbacks = 8
	DefaultCallouts  = 16
)

// Config sizes the tables. Zero values select the defaults.
type Config struct {
	Callbacks int
	Callouts  int
}

func (c Config) withDefaults() Config {
	if c.Callbacks <= 0 {
		c.Callbacks = DefaultCallbacks
	}
	if c.Callouts <= 0 {
		c.Callouts = DefaultCallouts
	}
	return c
}

// Validate checks the table sizes.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Callbacks > 1<<16-1 {
		return fmt.Errorf("sched: callbacks %d exceeds %d", c.Callbacks, 1<<16-1)
	}
	if c.Callouts > MaxCallouts {
		return fmt.Errorf("sched: callouts %d exceeds %d", c.Callouts, MaxCallouts)
	}
	return nil
}

// Scheduler is the tick dispatcher. All table storage is allocated by New.
type Scheduler struct {
	cs critical

	clock     Clock
	callbacks callbackTable
	callouts  calloutTable

	servicing bool
}

// New creates a scheduler with fixed-capacity tables.
func New(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Scheduler{
		callbacks: newCallbackTable(cfg.Callbacks),
		callouts:  newCalloutTable(cfg.Callouts),
	}, nil
}

// Now returns the current tick.
func (s *Scheduler) Now() uint32 { return s.clock.Now() }

// Tick advances the clock by one and services both tables, callbacks
// first. It must not be called from a handler or concurrently with itself;
// such calls return ErrReentrant without advancing the clock.
func (s *Scheduler) Tick() error {
	st := s.cs.enter()
	if s.servicing {
		s.cs.exit(st)
		return ErrReentrant
	}
	s.servicing = true

	s.clock.Advance()
	now := s.clock.Now()
	st = s.serviceCallbacks(st, now)
	st = s.serviceCallouts(st, now)

	s.servicing = false
	s.cs.exit(st)
	return nil
}

// RegisterCallback appends a periodic handler that fires every period
// ticks once enabled. New callbacks start disabled.
func (s *Scheduler) RegisterCallback(fn Func, period uint32) (CallbackID, error) {
	if fn == nil {
		return CallbackID{}, ErrNilHandler
	}
	if period == 0 {
		return CallbackID{}, ErrZeroPeriod
	}

	st := s.cs.enter()
	defer s.cs.exit(st)

	id, ok := s.callbacks.add(fn, period, s.clock.Now())
	if !ok {
		return CallbackID{}, ErrFull
	}
	return id, nil
}

// SetCallbackMode enables or disables the first callback registered with
// fn. Enabling restarts the period from the current tick. Unknown handlers
// are ignored.
func (s *Scheduler) SetCallbackMode(fn Func, mode Mode) {
	st := s.cs.enter()
	defer s.cs.exit(st)
	s.callbacks.setMode(s.callbacks.find(fn), mode, s.clock.Now())
}

// SetCallbackModeID is SetCallbackMode addressed by registration ID.
func (s *Scheduler) SetCallbackModeID(id CallbackID, mode Mode) {
	st := s.cs.enter()
	defer s.cs.exit(st)
	s.callbacks.setMode(id.Index(), mode, s.clock.Now())
}

// RegisterCallout schedules fn to run once, delay ticks from now, in the
// lowest free slot.
func (s *Scheduler) RegisterCallout(fn Func, delay uint32) (CalloutID, error) {
	if fn == nil {
		return CalloutID{}, ErrNilHandler
	}

	st := s.cs.enter()
	defer s.cs.exit(st)

	id, ok := s.callouts.claim(fn, s.clock.Now()+delay)
	if !ok {
		return CalloutID{}, ErrFull
	}
	return id, nil
}

// CancelCallout frees the lowest slot holding a pending callout registered
// with fn. It is a no-op if there is none.
func (s *Scheduler) CancelCallout(fn Func) {
	st := s.cs.enter()
	defer s.cs.exit(st)
	s.callouts.release(s.callouts.find(fn))
}

// CancelCalloutID cancels the callout returned by a registration, if it is
// still pending.
func (s *Scheduler) CancelCalloutID(id CalloutID) {
	st := s.cs.enter()
	defer s.cs.exit(st)
	s.callouts.releaseID(id)
}

// CalloutPending reports whether the callout is still waiting to fire.
func (s *Scheduler) CalloutPending(id CalloutID) bool {
	st := s.cs.enter()
	defer s.cs.exit(st)
	i := id.Slot()
	if i < 0 || i >= len(s.callouts.slots) {
		return false
	}
	return s.callouts.occupied&(uint64(1)<<i) != 0 && s.callouts.slots[i].gen == id.gen
}

// Stats is a point-in-time view of the tables.
type Stats struct {
	Tick             uint32
	Callbacks        int
	EnabledCallbacks int
	PendingCallouts  int
	CallbackCap      int
	CalloutCap       int
}

// Stats returns a consistent snapshot of the clock and table occupancy.
func (s *Scheduler) Stats() Stats {
	st := s.cs.enter()
	defer s.cs.exit(st)
	return Stats{
		Tick:             s.clock.Now(),
		Callbacks:        s.callbacks.count,
		EnabledCallbacks: s.callbacks.enabledCount(),
		PendingCallouts:  s.callouts.pending(),
		CallbackCap:      len(s.callbacks.entries),
		CalloutCap:       len(s.callouts.slots),
	}
}
