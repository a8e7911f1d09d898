//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"juicy/app"
	"juicy/hal"
	"juicy/internal/config"
)

func main() {
	var (
		hcfg       hal.HeadlessConfig
		configPath string
		traceLevel string
		quietLEDs  bool
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 0, "Wall-clock tick rate in headless mode (0 = config value).")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = config value, then run forever).")
	flag.StringVar(&configPath, "config", "", "YAML configuration file.")
	flag.StringVar(&traceLevel, "trace", "", "Log level: err, warning, info, debug (overrides config).")
	flag.BoolVar(&quietLEDs, "quiet-leds", false, "Do not log LED changes.")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if traceLevel != "" {
		cfg.Trace = traceLevel
	}

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if hcfg.Enabled {
		if hcfg.Hz == 0 {
			hcfg.Hz = cfg.Headless.Hz
		}
		if hcfg.Ticks == 0 {
			hcfg.Ticks = cfg.Headless.Ticks
		}
		script, err := cfg.Script()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		hcfg.Rate = cfg.Rate
		hcfg.Script = script
		hcfg.QuietLEDs = quietLEDs
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(ctx, newApp, hal.WindowConfig{Rate: cfg.Rate}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
