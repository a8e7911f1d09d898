package display

import (
	"image/color"

	"juicy/hal"

	"tinygo.org/x/drivers"
)

// region adapts a horizontal band of an RGB565 framebuffer to the drivers
// Displayer interface. Coordinates are relative to the band.
type region struct {
	fb hal.Framebuffer
	y0 int
	h  int
}

var _ drivers.Displayer = (*region)(nil)

func newRegion(fb hal.Framebuffer, y0, h int) *region {
	if y0 < 0 {
		y0 = 0
	}
	if y0+h > fb.Height() {
		h = fb.Height() - y0
	}
	return &region{fb: fb, y0: y0, h: h}
}

func (d *region) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.h)
}

func (d *region) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.h {
		return
	}
	off := (d.y0+iy)*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display is a no-op; the screen presents the whole framebuffer at once.
func (d *region) Display() error { return nil }

func (d *region) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.fb.Buffer()
	w := d.fb.Width()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := (d.y0 + py) * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				return nil
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// ScrollUp shifts the band up by lines and clears the exposed rows.
// tinyterm uses it for software scrolling.
func (d *region) ScrollUp(lines int16, bg color.RGBA) error {
	n := int(lines)
	if n <= 0 {
		return nil
	}
	if n >= d.h {
		return d.FillRectangle(0, 0, int16(d.fb.Width()), int16(d.h), bg)
	}
	buf := d.fb.Buffer()
	stride := d.fb.StrideBytes()
	start := d.y0 * stride
	end := (d.y0 + d.h) * stride
	if end > len(buf) {
		end = len(buf)
	}
	copy(buf[start:end-n*stride], buf[start+n*stride:end])
	return d.FillRectangle(0, int16(d.h-n), int16(d.fb.Width()), int16(n), bg)
}

func (d *region) SetScroll(line int16) {}

func (d *region) SetRotation(rotation drivers.Rotation) error { return nil }

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
