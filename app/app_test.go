package app

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"juicy/hal"
	"juicy/internal/config"
	"juicy/target"
)

type logLines struct {
	mu    sync.Mutex
	lines []string
}

func (l *logLines) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}
func (l *logLines) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *logLines) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type nopLED struct{}

func (nopLED) High() {}
func (nopLED) Low()  {}

type pullupLine struct{}

func (pullupLine) Read() bool             { return true }
func (pullupLine) DriveLow() error        { return nil }
func (pullupLine) DriveHigh() error       { return nil }
func (pullupLine) Release() error         { return nil }
func (pullupLine) OnFalling(func()) error { return nil }

type darkSensor struct{}

func (darkSensor) Init() error                           { return nil }
func (darkSensor) Shutdown() error                       { return nil }
func (darkSensor) Read(hal.ColorChannel) (uint16, error) { return 100, nil }

type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8) {
	for i := range f.buf {
		f.buf[i] = r & g & b
	}
}
func (f *memFB) Present() error { f.presents++; return nil }

type fbDisplay struct{ fb *memFB }

func (d fbDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type testBoard struct {
	log *logLines
	fb  *memFB
}

func newTestBoard() *testBoard {
	return &testBoard{
		log: &logLines{},
		fb:  &memFB{w: 160, h: 120, buf: make([]byte, 160*120*2)},
	}
}

func (b *testBoard) Logger() hal.Logger       { return b.log }
func (b *testBoard) RedLED() hal.LED          { return nopLED{} }
func (b *testBoard) BlueLED() hal.LED         { return nopLED{} }
func (b *testBoard) Line(hal.LineID) hal.Line { return pullupLine{} }
func (b *testBoard) Sensor() hal.ColorSensor  { return darkSensor{} }
func (b *testBoard) Display() hal.Display     { return fbDisplay{fb: b.fb} }
func (b *testBoard) Time() hal.Time           { return nil }

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.Target.AmbientSamples = 2
	cfg.Target.AmbientIntervalMs = 5
	cfg.Target.ArmDelayMs = 5
	return cfg
}

func TestSystemBootsAndArms(t *testing.T) {
	b := newTestBoard()
	sys, err := newSystem(b, fastConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	if !b.log.contains(`"msg":"boot"`) {
		t.Fatalf("log = %q, want boot line", b.log.lines)
	}

	for seq := uint64(1); seq <= 20; seq++ {
		sys.k.TickTo(seq)
		if err := sys.step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	st := sys.tgt.Status()
	if !st.Ready || st.State != target.Detecting {
		t.Fatalf("Status() = %+v, want ready in Detecting", st)
	}
	if st.AmbientRed != 100 || st.AmbientGreen != 100 {
		t.Fatalf("ambient = %d/%d, want 100/100", st.AmbientRed, st.AmbientGreen)
	}
	if !b.log.contains(`"msg":"armed"`) {
		t.Fatalf("log = %q, want armed line", b.log.lines)
	}
	if b.fb.presents == 0 {
		t.Fatal("screen never presented")
	}
}

func TestSystemWarnsOnLostTicks(t *testing.T) {
	b := newTestBoard()
	sys, err := newSystem(b, fastConfig())
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	sys.k.TickTo(1)
	sys.k.TickTo(5)
	if sys.k.Lost() != 3 {
		t.Fatalf("Lost() = %d, want 3", sys.k.Lost())
	}
	if !b.log.contains(`"kind":"overrun"`) || !b.log.contains(`"lost":"3"`) {
		t.Fatalf("log = %q, want overrun warning", b.log.lines)
	}
}

func TestNewWithConfigReportsStartupError(t *testing.T) {
	cfg := config.Default()
	cfg.Trace = "loud"
	step := NewWithConfig(newTestBoard(), cfg)
	if err := step(); err == nil {
		t.Fatal("step() err = nil, want start-up error")
	}

	cfg = config.Default()
	cfg.Target.StunTimeoutMs = 0
	step = NewWithConfig(newTestBoard(), cfg)
	if err := step(); !errors.Is(err, target.ErrConfig) {
		t.Fatalf("step() err = %v, want target.ErrConfig", err)
	}
}

func TestNoDisplay(t *testing.T) {
	b := newTestBoard()
	cfg := fastConfig()
	cfg.Display = false
	sys, err := newSystem(b, cfg)
	if err != nil {
		t.Fatalf("newSystem: %v", err)
	}
	sys.k.TickTo(1)
	if err := sys.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if b.fb.presents != 0 {
		t.Fatalf("presents = %d, want 0", b.fb.presents)
	}
}

func TestDrawFatalWraps(t *testing.T) {
	fb := &memFB{w: 40, h: 40, buf: make([]byte, 40*40*2)}
	drawFatal(fb, []string{"a long line that must wrap"})

	dark := 0
	for i := 0; i+1 < len(fb.buf); i += 2 {
		if fb.buf[i] != 0xFF || fb.buf[i+1] != 0xFF {
			dark++
		}
	}
	if dark == 0 {
		t.Fatal("drawFatal drew nothing")
	}
}

func TestTakeRunes(t *testing.T) {
	prefix, rest := takeRunes("héllo", 2)
	if prefix != "hé" || rest != "llo" {
		t.Fatalf("takeRunes() = %q, %q, want %q, %q", prefix, rest, "hé", "llo")
	}
	if prefix, rest := takeRunes("ab", 5); prefix != "ab" || rest != "" {
		t.Fatalf("takeRunes(short) = %q, %q", prefix, rest)
	}
}
