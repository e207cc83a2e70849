package display

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// SystemFont is the default UI font for the 128x64 panel.
var SystemFont tinyfont.Fonter = &proggy.TinySZ8pt7b

var pixelOn = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// WriteLine renders one line of text with its baseline at y.
func (d *Driver) WriteLine(font tinyfont.Fonter, x, y int, s string) {
	if font == nil {
		font = SystemFont
	}
	tinyfont.WriteLine(&fbDisplay{fb: d.fb}, font, int16(x), int16(y), s, pixelOn)
}

// LineWidth returns the advance width of s in pixels.
func (d *Driver) LineWidth(font tinyfont.Fonter, s string) int {
	if font == nil {
		font = SystemFont
	}
	_, outboxWidth := tinyfont.LineWidth(font, s)
	return int(outboxWidth)
}

// fbDisplay adapts the framebuffer to drivers.Displayer so tinyfont can
// render glyphs into it. Any non-black color switches the pixel on.
type fbDisplay struct {
	fb *Framebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.SetPixel(int(x), int(y), c.R|c.G|c.B != 0)
}

func (d *fbDisplay) Display() error { return nil }
