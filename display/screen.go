// Package display renders the target status screen: a header with the
// scheduler and target state, and a scrolling console of events.
package display

import (
	"fmt"
	"image/color"

	"juicy/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	fontHeight   = 10
	fontOffset   = 6
	headerLines  = 3
	headerHeight = headerLines*fontHeight + 2
)

var (
	fgColor     = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	accentColor = color.RGBA{R: 0xFF, G: 0x40, B: 0x40, A: 0xFF}
	headerBG    = color.RGBA{R: 0x10, G: 0x18, B: 0x30, A: 0xFF}
)

// Status is what the header shows.
type Status struct {
	Tick      uint32
	State     string
	Ready     bool
	Kills     uint8
	Callbacks int
	Callouts  int
	Lost      uint64
	Faults    uint32
}

// Screen owns a framebuffer. It is not safe for concurrent use.
type Screen struct {
	fb      hal.Framebuffer
	header  *region
	console *region
	term    *tinyterm.Terminal

	last  Status
	drawn bool
	dirty bool
}

// New returns a screen on fb, or nil when fb has no addressable RGB565
// buffer.
func New(fb hal.Framebuffer) *Screen {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 || fb.Buffer() == nil {
		return nil
	}
	if fb.Height() <= headerHeight+fontHeight {
		return nil
	}
	s := &Screen{
		fb:      fb,
		header:  newRegion(fb, 0, headerHeight),
		console: newRegion(fb, headerHeight, fb.Height()-headerHeight),
	}
	fb.ClearRGB(0, 0, 0)
	s.term = tinyterm.NewTerminal(s.console)
	s.term.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        fontHeight,
		FontOffset:        fontOffset,
		UseSoftwareScroll: true,
	})
	s.dirty = true
	return s
}

// Println appends a line to the console.
func (s *Screen) Println(line string) {
	if s == nil {
		return
	}
	s.term.Write([]byte(line))
	s.term.Write([]byte{'\n'})
	s.dirty = true
}

// Update redraws the header if st changed and presents the framebuffer
// when anything was drawn.
func (s *Screen) Update(st Status) error {
	if s == nil {
		return nil
	}
	if !s.drawn || st != s.last {
		s.drawHeader(st)
		s.last = st
		s.drawn = true
		s.dirty = true
	}
	if !s.dirty {
		return nil
	}
	s.dirty = false
	return s.fb.Present()
}

func (s *Screen) drawHeader(st Status) {
	w, _ := s.header.Size()
	s.header.FillRectangle(0, 0, w, headerHeight, headerBG)

	kills := "-"
	if st.Kills != 0xFF {
		kills = fmt.Sprint(st.Kills)
	}
	state := st.State
	if !st.Ready {
		state = "calibrating"
	}
	lines := [headerLines]string{
		fmt.Sprintf("tick %d", st.Tick),
		fmt.Sprintf("%s  kills %s", state, kills),
		fmt.Sprintf("cb %d  co %d  lost %d  flt %d", st.Callbacks, st.Callouts, st.Lost, st.Faults),
	}
	for i, line := range lines {
		c := fgColor
		if i == 1 && st.Ready && st.State != "Detecting" {
			c = accentColor
		}
		tinyfont.WriteLine(s.header, &proggy.TinySZ8pt7b, 2, int16(i*fontHeight+fontOffset+1), line, c)
	}
}
