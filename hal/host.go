//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	red    *hostLED
	blue   *hostLED
	lines  [lineCount]*virtualLine
	sensor *simSensor
	fb     *hostFramebuffer
	t      *hostTime
}

// New returns a host HAL implementation backed by a simulated board.
func New() HAL {
	return newHostHAL(os.Stdout)
}

func newHostHAL(w io.Writer) *hostHAL {
	logger := &hostLogger{w: w}
	h := &hostHAL{
		logger: logger,
		red:    &hostLED{name: "red", logger: logger},
		blue:   &hostLED{name: "blue", logger: logger},
		sensor: newSimSensor(),
		fb:     newHostFramebuffer(240, 160),
		t:      newHostTime(),
	}
	for i := range h.lines {
		h.lines[i] = newVirtualLine(LineID(i))
	}
	return h
}

func (h *hostHAL) Logger() Logger      { return h.logger }
func (h *hostHAL) RedLED() LED         { return h.red }
func (h *hostHAL) BlueLED() LED        { return h.blue }
func (h *hostHAL) Sensor() ColorSensor { return h.sensor }
func (h *hostHAL) Display() Display    { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time          { return h.t }

func (h *hostHAL) Line(id LineID) Line {
	if id >= lineCount {
		return nil
	}
	return h.lines[id]
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	name   string
	on     bool
	quiet  bool
	logger *hostLogger
}

func (l *hostLED) High() { l.set(true) }
func (l *hostLED) Low()  { l.set(false) }

func (l *hostLED) set(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on == on {
		return
	}
	l.on = on
	if l.quiet {
		return
	}
	if on {
		l.logger.WriteLineString("led " + l.name + ": HIGH")
	} else {
		l.logger.WriteLineString("led " + l.name + ": LOW")
	}
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
