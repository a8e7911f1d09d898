//go:build !tinygo

package hal

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Hz is the wall-clock rate at which ticks are emitted.
	Hz int
	// Ticks stops the run after this many ticks (0 = until ctx is done).
	Ticks uint64
	// StepBudget is the number of main-loop steps run per tick.
	StepBudget int
	// Rate is the number of ticks per simulated millisecond.
	Rate uint32
	// Script is replayed against the simulated board.
	Script []Stimulus
	// QuietLEDs suppresses the per-change LED log lines.
	QuietLEDs bool
}

// RunHeadless runs the firmware against the simulated board without
// opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 1000
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	if cfg.Rate == 0 {
		cfg.Rate = 1
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL(os.Stdout)
	h.t.rate = cfg.Rate
	h.red.quiet = cfg.QuietLEDs
	h.blue.quiet = cfg.QuietLEDs
	step := newApp(h)

	steps := slices.Clone(cfg.Script)
	slices.SortStableFunc(steps, func(a, b Stimulus) int { return cmp.Compare(a.AtMs, b.AtMs) })
	sc := &script{steps: steps}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.stepN(1)
			tick++
			sc.advance(h, tick/uint64(cfg.Rate))
			if step != nil {
				for i := 0; i < cfg.StepBudget; i++ {
					if err := step(); err != nil {
						return err
					}
				}
			}
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
