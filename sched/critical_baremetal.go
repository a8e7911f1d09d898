//go:build tinygo && baremetal

package sched

import "runtime/interrupt"

type csState = interrupt.State

// critical masks interrupts. Disable/Restore nest, so entering from the
// tick path (already masked) is fine.
type critical struct{}

func (*critical) enter() csState { return interrupt.Disable() }

func (*critical) exit(st csState) { interrupt.Restore(st) }
