package app

import (
	"fmt"

	"juicy/display"
	"juicy/fsm"
	"juicy/hal"
	"juicy/internal/buildinfo"
	"juicy/internal/config"
	"juicy/internal/trace"
	"juicy/kernel"
	"juicy/sched"
	"juicy/target"
)

type system struct {
	h      hal.HAL
	rate   sched.Rate
	s      *sched.Scheduler
	k      *kernel.System
	tgt    *target.Target
	tr     *trace.Tracer
	screen *display.Screen

	lastDraw    uint32
	lastDropped uint32
	lastFaults  uint32
}

// New initializes the firmware with the compiled-in configuration and
// returns the main-loop step.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, config.Default())
}

// Run starts the firmware and runs the main loop forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, config.Default())
}

func RunWithConfig(h hal.HAL, cfg config.Config) {
	step := NewWithConfig(h, cfg)
	for {
		if err := step(); err != nil {
			fatal(h, err)
		}
	}
}

// NewWithConfig initializes the firmware. A start-up failure is returned
// by every call of the step function.
func NewWithConfig(h hal.HAL, cfg config.Config) func() error {
	sys, err := newSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return sys.step
}

func newSystem(h hal.HAL, cfg config.Config) (*system, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := trace.ParseLevel(cfg.Trace)
	if err != nil {
		return nil, err
	}
	tr := trace.New(h.Logger(), level)

	s, err := sched.New(cfg.SchedConfig())
	if err != nil {
		return nil, err
	}
	rate := sched.Rate(cfg.Rate)
	if ht := h.Time(); ht != nil && ht.Rate() != 0 {
		rate = sched.Rate(ht.Rate())
	}

	tgt, err := target.New(h, s, rate, cfg.Target, tr)
	if err != nil {
		return nil, err
	}

	sys := &system{
		h:    h,
		rate: rate,
		s:    s,
		k:    kernel.NewSystem(s),
		tgt:  tgt,
		tr:   tr,
	}
	if cfg.Display {
		if d := h.Display(); d != nil {
			sys.screen = display.New(d.Framebuffer())
		}
	}
	tgt.Observe(func(from, to fsm.StateID, ev fsm.EventID) {
		sys.screen.Println(fmt.Sprintf("%d %s>%s", s.Now(), target.StateName(from), target.StateName(to)))
	})
	sys.k.OnLost = func(n uint64) {
		tr.Warn("overrun", "ticks lost", trace.Uint64("lost", n), trace.Uint64("total", sys.k.Lost()))
	}

	tr.L.Info().
		Str("build", buildinfo.Short()).
		Str("built", buildinfo.Date).
		Int("callbacks", cfg.SchedConfig().Callbacks).
		Int("callouts", cfg.SchedConfig().Callouts).
		Int("rate", int(rate)).
		Log("boot")

	if err := tgt.Start(); err != nil {
		return nil, err
	}
	sys.screen.Println("calibrating")

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			sys.k.StartTick(ch, nil)
		}
	}
	return sys, nil
}

// step is one main-loop iteration.
func (sys *system) step() error {
	sys.tgt.Step()
	st := sys.tgt.Status()

	if st.Dropped != sys.lastDropped {
		sys.tr.Warn("mailbox", "events dropped", trace.Uint64("total", uint64(st.Dropped)))
		sys.lastDropped = st.Dropped
	}
	if st.Faults != sys.lastFaults {
		sys.tr.Warn("fault", "handler faults", trace.Uint64("total", uint64(st.Faults)))
		sys.lastFaults = st.Faults
	}

	if sys.screen == nil {
		sys.k.Yield()
		return nil
	}
	now := sys.s.Now()
	if now-sys.lastDraw < sys.rate.Ticks(100) && sys.lastDraw != 0 {
		sys.k.Yield()
		return nil
	}
	sys.lastDraw = now
	stats := sys.s.Stats()
	return sys.screen.Update(display.Status{
		Tick:      stats.Tick,
		State:     target.StateName(st.State),
		Ready:     st.Ready,
		Kills:     st.Kills,
		Callbacks: stats.EnabledCallbacks,
		Callouts:  stats.PendingCallouts,
		Lost:      sys.k.Lost(),
		Faults:    st.Faults,
	})
}
