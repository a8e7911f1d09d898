//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

// newTinyGoTime starts a 1 ms ticker. The channel holds one pending tick.
func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 1)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }
func (t *tinyGoTime) Rate() uint32         { return 1 }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func newPinLED(pin machine.Pin) *pinLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &pinLED{pin: pin}
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// pinLine is an open-drain signal line on a GPIO with the internal pull-up.
type pinLine struct {
	pin machine.Pin
}

func newPinLine(pin machine.Pin) *pinLine {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &pinLine{pin: pin}
}

func (l *pinLine) Read() bool { return l.pin.Get() }

func (l *pinLine) DriveLow() error {
	l.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l.pin.Low()
	return nil
}

func (l *pinLine) DriveHigh() error {
	l.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l.pin.High()
	return nil
}

func (l *pinLine) Release() error {
	l.pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return nil
}

func (l *pinLine) OnFalling(fn func()) error {
	if fn == nil {
		return l.pin.SetInterrupt(0, nil)
	}
	return l.pin.SetInterrupt(machine.PinFalling, func(machine.Pin) { fn() })
}
