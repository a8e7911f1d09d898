package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// LineID names one of the shared signal lines between targets.
type LineID uint8

const (
	// LineSet is pulled low by a target that was hit and pulsed to force
	// the other targets into configuration.
	LineSet LineID = iota
	// LineCnt carries kill-count ticks while configuring.
	LineCnt
	lineCount
)

func (id LineID) String() string {
	switch id {
	case LineSet:
		return "SET"
	case LineCnt:
		return "CNT"
	default:
		return "unknown"
	}
}

// Line is an open-drain signal line with a pull-up.
type Line interface {
	// Read returns the line level (true = high).
	Read() bool
	// DriveLow switches the pin to output and pulls the line low.
	DriveLow() error
	// DriveHigh switches the pin to output and drives the line high.
	DriveHigh() error
	// Release returns the pin to input with pull-up.
	Release() error
	// OnFalling attaches fn to the falling edge. A nil fn detaches.
	// fn runs in interrupt context.
	OnFalling(fn func()) error
}

// ColorChannel selects one of the colour sensor's filtered photodiodes.
type ColorChannel uint8

const (
	ColorGreen ColorChannel = iota
	ColorRed
	ColorBlue
	ColorClear
)

// ColorSensor is a light sensor with per-colour channels.
type ColorSensor interface {
	Init() error
	Shutdown() error
	Read(ch ColorChannel) (uint16, error)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides the base tick stream.
//
// Ticks are numbered from 1. The source never blocks: a tick that cannot be
// delivered because the previous one is still pending is dropped, which
// shows up as a gap in the sequence.
type Time interface {
	Ticks() <-chan uint64
	// Rate is the number of ticks per millisecond.
	Rate() uint32
}

// HAL provides the only contact point between the firmware and the board.
type HAL interface {
	Logger() Logger
	RedLED() LED
	BlueLED() LED
	Line(id LineID) Line
	Sensor() ColorSensor
	Display() Display
	Time() Time
}
