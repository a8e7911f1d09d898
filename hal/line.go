package hal

import (
	"fmt"
	"sync"
)

// virtualLine models an open-drain line with a pull-up on the host.
//
// The level is low whenever this end drives it low or an external party
// (another target, a button) pulls it low.
type virtualLine struct {
	mu       sync.Mutex
	id       LineID
	driving  bool
	drive    bool
	external bool
	onFall   func()
}

func newVirtualLine(id LineID) *virtualLine {
	return &virtualLine{id: id}
}

func (l *virtualLine) levelLocked() bool {
	if l.external {
		return false
	}
	if l.driving {
		return l.drive
	}
	return true
}

func (l *virtualLine) Read() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.levelLocked()
}

func (l *virtualLine) DriveLow() error  { return l.set(func() { l.driving, l.drive = true, false }) }
func (l *virtualLine) DriveHigh() error { return l.set(func() { l.driving, l.drive = true, true }) }
func (l *virtualLine) Release() error   { return l.set(func() { l.driving = false }) }

// pull simulates an external party pulling the line low (or letting go).
func (l *virtualLine) pull(low bool) {
	_ = l.set(func() { l.external = low })
}

func (l *virtualLine) OnFalling(fn func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFall = fn
	return nil
}

// set applies a change and runs the edge handler outside the lock on a
// high-to-low transition.
func (l *virtualLine) set(change func()) error {
	l.mu.Lock()
	before := l.levelLocked()
	change()
	after := l.levelLocked()
	fn := l.onFall
	l.mu.Unlock()

	if before && !after && fn != nil {
		fn()
	}
	return nil
}

func (l *virtualLine) String() string {
	return fmt.Sprintf("line %s", l.id)
}
