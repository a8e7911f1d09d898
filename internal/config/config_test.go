package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"juicy/hal"
	"juicy/target"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
scheduler:
  callouts: 32
rate: 2
trace: debug
target:
  stun_timeout_ms: 500
headless:
  ticks: 5000
  script:
    - {at_ms: 100, action: laser_on}
    - {at_ms: 400, action: laser_off}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Scheduler.Callouts = 32
	want.Rate = 2
	want.Trace = "debug"
	want.Target.StunTimeoutMs = 500
	want.Headless.Ticks = 5000
	want.Headless.Script = []Step{
		{AtMs: 100, Action: "laser_on"},
		{AtMs: 400, Action: "laser_off"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	script, err := cfg.Script()
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	wantScript := []hal.Stimulus{
		{AtMs: 100, Action: hal.ActionLaserOn},
		{AtMs: 400, Action: hal.ActionLaserOff},
	}
	if diff := cmp.Diff(wantScript, script); diff != "" {
		t.Fatalf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "colour: red\n",
		"too many slots": "scheduler: {callouts: 65}\n",
		"zero rate":      "rate: 0\n",
		"bad action":     "headless: {script: [{at_ms: 1, action: dance}]}\n",
		"empty window":   "target: {hit_min_samples: 5, hit_max_samples: 5}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("Parse(%q) err = nil, want error", doc)
			}
		})
	}
}

func TestParseWrapsTargetError(t *testing.T) {
	_, err := Parse([]byte("target: {flash_on_ms: 0}\n"))
	if !errors.Is(err, ErrInvalid) || !errors.Is(err, target.ErrConfig) {
		t.Fatalf("Parse err = %v, want ErrInvalid wrapping target.ErrConfig", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "juicy.yaml")
	if err := os.WriteFile(path, []byte("display: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display {
		t.Fatal("Display = true, want false")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load(missing) err = nil, want error")
	}
}
