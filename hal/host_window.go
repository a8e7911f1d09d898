//go:build !tinygo && cgo

package hal

import (
	"context"
	"image"

	"juicy/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	// Rate is the number of ticks per millisecond.
	Rate uint32
	// Scale multiplies the framebuffer size for the window.
	Scale int
}

// RunWindow starts a desktop window that shows the status framebuffer and
// maps keys onto the simulated board inputs. It blocks until the window
// closes.
func RunWindow(ctx context.Context, newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	h := New().(*hostHAL)
	if cfg.Rate != 0 {
		h.t.rate = cfg.Rate
	}
	step := newApp(h)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go h.t.run(ctx)

	g := &hostGame{h: h, ctx: ctx, step: step}
	ebiten.SetWindowTitle("juicy target (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h        *hostHAL
	ctx      context.Context
	controls hostControls
	img      *image.RGBA
	fbImg    *ebiten.Image
	scratch  []byte
	step     func() error
}

func (g *hostGame) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	g.controls.poll(g.h)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)
	expandRGB565(g.img.Pix, g.scratch)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
