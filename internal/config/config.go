// Package config holds the runtime configuration: scheduler table sizes,
// tick rate, target timings and the host stimulus script.
package config

import (
	"errors"
	"fmt"

	"juicy/hal"
	"juicy/sched"
	"juicy/target"
)

// Config is the top-level configuration document.
type Config struct {
	Scheduler Scheduler     `yaml:"scheduler"`
	Rate      uint32        `yaml:"rate"`
	Trace     string        `yaml:"trace"`
	Display   bool          `yaml:"display"`
	Target    target.Config `yaml:"target"`
	Headless  Headless      `yaml:"headless"`
}

// Scheduler sizes the dispatcher tables.
type Scheduler struct {
	Callbacks int `yaml:"callbacks"`
	Callouts  int `yaml:"callouts"`
}

// Headless configures the host runner without a window.
type Headless struct {
	Ticks  uint64 `yaml:"ticks"`
	Hz     int    `yaml:"hz"`
	Script []Step `yaml:"script"`
}

// Step is one scripted stimulus.
type Step struct {
	AtMs   uint32 `yaml:"at_ms"`
	Action string `yaml:"action"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Scheduler: Scheduler{
			Callbacks: sched.DefaultCallbacks,
			Callouts:  sched.DefaultCallouts,
		},
		Rate:    1,
		Trace:   "info",
		Display: true,
		Target:  target.DefaultConfig(),
		Headless: Headless{
			Hz: 1000,
		},
	}
}

var ErrInvalid = errors.New("config: invalid")

// Validate checks every section and wraps the first failure.
func (c Config) Validate() error {
	if err := c.SchedConfig().Validate(); err != nil {
		return fmt.Errorf("%w: scheduler: %w", ErrInvalid, err)
	}
	if c.Rate == 0 {
		return fmt.Errorf("%w: rate must be > 0", ErrInvalid)
	}
	if err := c.Target.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Headless.Hz < 0 {
		return fmt.Errorf("%w: headless.hz must be >= 0", ErrInvalid)
	}
	if _, err := c.Script(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// SchedConfig converts the scheduler section.
func (c Config) SchedConfig() sched.Config {
	return sched.Config{Callbacks: c.Scheduler.Callbacks, Callouts: c.Scheduler.Callouts}
}

// Script parses the headless stimulus steps.
func (c Config) Script() ([]hal.Stimulus, error) {
	out := make([]hal.Stimulus, 0, len(c.Headless.Script))
	for i, s := range c.Headless.Script {
		a, err := hal.ParseAction(s.Action)
		if err != nil {
			return nil, fmt.Errorf("headless.script[%d]: %w", i, err)
		}
		out = append(out, hal.Stimulus{AtMs: s.AtMs, Action: a})
	}
	return out, nil
}
