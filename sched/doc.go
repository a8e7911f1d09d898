// Package sched is a cooperative tick dispatcher.
//
// A Scheduler owns one monotonically increasing tick counter and two fixed
// tables driven off it:
//
//   - callbacks fire every period ticks while enabled,
//   - callouts fire once at an absolute tick and then free their slot.
//
// The platform calls Tick once per timer period. Tick advances the clock,
// services the callback table and then the callout table. Every firing is
// an exact match against the current tick; missed ticks are never replayed.
//
// Table mutations and the service passes run inside a critical section
// (interrupts disabled on bare metal, a mutex elsewhere). Handlers run
// outside of it, so a handler may register, cancel or toggle entries.
package sched
