//go:build !(tinygo && baremetal)

package sched

import "sync"

type csState struct{}

type critical struct {
	mu sync.Mutex
}

func (c *critical) enter() csState {
	c.mu.Lock()
	return csState{}
}

func (c *critical) exit(csState) {
	c.mu.Unlock()
}
