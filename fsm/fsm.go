// Package fsm is a table-driven state machine fed by an interrupt-safe
// event queue.
//
// Handlers run on the main loop only. Events may be published from any
// context, including scheduler handlers and line interrupts.
package fsm

import (
	"errors"
	"fmt"

	"juicy/kernel"
)

// StateID indexes the state handler table.
type StateID uint8

// EventID identifies an event. Values below FirstUserEvent are reserved.
type EventID uint8

const (
	Enter EventID = iota
	Idle
	Exit
	FirstUserEvent
)

// Handler processes one event for a state.
type Handler func(ev EventID)

// Transition moves the machine from From to To when On is received.
type Transition struct {
	From StateID
	On   EventID
	To   StateID
}

var (
	ErrNoStates   = errors.New("fsm: no states")
	ErrNilHandler = errors.New("fsm: nil state handler")
	ErrBadState   = errors.New("fsm: unknown state")
	ErrReserved   = errors.New("fsm: reserved event in transition")
)

// Machine is the running state machine.
type Machine struct {
	states  []Handler
	rules   []Transition
	current StateID
	started bool
	events  kernel.Mailbox

	// OnTransition, when set, is called after Exit and before Enter.
	OnTransition func(from, to StateID, ev EventID)
}

// New validates the state and transition tables.
func New(states []Handler, rules []Transition, initial StateID) (*Machine, error) {
	if len(states) == 0 {
		return nil, ErrNoStates
	}
	for i, h := range states {
		if h == nil {
			return nil, fmt.Errorf("%w: state %d", ErrNilHandler, i)
		}
	}
	if int(initial) >= len(states) {
		return nil, fmt.Errorf("%w: initial %d", ErrBadState, initial)
	}
	for i, r := range rules {
		if int(r.From) >= len(states) || int(r.To) >= len(states) {
			return nil, fmt.Errorf("%w: rule %d", ErrBadState, i)
		}
		if r.On < FirstUserEvent {
			return nil, fmt.Errorf("%w: rule %d", ErrReserved, i)
		}
	}
	return &Machine{
		states:  states,
		rules:   append([]Transition(nil), rules...),
		current: initial,
	}, nil
}

// Publish queues ev for the main loop. It never blocks and reports
// whether the event was accepted.
func (m *Machine) Publish(ev EventID) bool {
	return m.events.TrySend(kernel.Event{Kind: uint8(ev)})
}

// Dropped reports how many published events were lost to a full queue.
func (m *Machine) Dropped() uint32 { return m.events.Dropped() }

// Pending reports the number of queued events.
func (m *Machine) Pending() int { return m.events.Len() }

// Current returns the active state.
func (m *Machine) Current() StateID { return m.current }

// Run performs one main-loop step.
//
// The first call enters the initial state. Later calls take one queued
// event: an event matching a rule for the current state triggers the
// transition (first matching rule wins), any other event goes to the
// current state's handler. With nothing queued the state receives Idle.
func (m *Machine) Run() {
	if !m.started {
		m.started = true
		m.states[m.current](Enter)
		return
	}

	e, ok := m.events.TryRecv()
	if !ok {
		m.states[m.current](Idle)
		return
	}
	ev := EventID(e.Kind)
	for _, r := range m.rules {
		if r.From != m.current || r.On != ev {
			continue
		}
		from := m.current
		m.states[from](Exit)
		m.current = r.To
		if m.OnTransition != nil {
			m.OnTransition(from, r.To, ev)
		}
		m.states[r.To](Enter)
		return
	}
	m.states[m.current](ev)
}
