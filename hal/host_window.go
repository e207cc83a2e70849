//go:build !tinygo

package hal

import (
	"image"

	"vhub/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowScale = 4

// RunWindow starts a desktop window that shows the panel and maps keyboard
// keys to the button lines. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h}
	g.step = step
	ebiten.SetWindowTitle("vhub (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.bus.width*windowScale, h.bus.height*windowScale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.setButton(0, ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyZ))
	g.h.setButton(1, ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeyX))

	g.h.t.step(1)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	bus := g.h.bus
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, bus.width, bus.height))
		g.scratch = make([]byte, len(bus.frame))
		g.fbImg = ebiten.NewImage(bus.width, bus.height)
	}

	bus.snapshot(g.scratch)

	// Page-major 1bpp: byte x + (y/8)*width, bit y%8.
	dst := g.img.Pix
	for y := 0; y < bus.height; y++ {
		row := (y / 8) * bus.width
		bit := byte(1) << (y % 8)
		for x := 0; x < bus.width; x++ {
			j := (y*bus.width + x) * 4
			var v byte
			if g.scratch[row+x]&bit != 0 {
				v = 0xFF
			}
			dst[j+0] = v
			dst[j+1] = v
			dst[j+2] = v
			dst[j+3] = 0xFF
		}
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.bus.width, g.h.bus.height
}
