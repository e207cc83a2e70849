package display

// HLine draws a horizontal run of pixels starting at (x, y).
func (d *Driver) HLine(x, y, length int, on bool) {
	for i := 0; i < length; i++ {
		d.fb.SetPixel(x+i, y, on)
	}
}

// VLine draws a vertical run of pixels starting at (x, y).
func (d *Driver) VLine(x, y, length int, on bool) {
	for i := 0; i < length; i++ {
		d.fb.SetPixel(x, y+i, on)
	}
}

// Rect draws a rectangle outline or a filled rectangle.
func (d *Driver) Rect(x, y, w, h int, filled bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if filled {
		for row := 0; row < h; row++ {
			d.HLine(x, y+row, w, true)
		}
		return
	}
	d.HLine(x, y, w, true)
	d.HLine(x, y+h-1, w, true)
	d.VLine(x, y, h, true)
	d.VLine(x+w-1, y, h, true)
}

// ProgressBar draws an outlined bar of the given width filled to
// progress percent (0..100). The bar is 8 pixels tall.
func (d *Driver) ProgressBar(x, y, w int, progress int) {
	const barHeight = 8
	if w <= 0 {
		return
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	d.Rect(x, y, w, barHeight, false)

	fill := (w * progress) / 100
	if fill > 2 {
		d.Rect(x+1, y+1, fill-2, barHeight-2, true)
	}
}

// DrawBitmap copies a page-major 1bpp bitmap to (x, y). The data layout
// matches the framebuffer's (bit r%8 of byte c + (r/8)*w); h must be a
// multiple of 8 for the trailing page to be fully defined.
func (d *Driver) DrawBitmap(x, y, w, h int, data []byte) {
	if w <= 0 || h <= 0 || len(data) < w*((h+7)/8) {
		return
	}
	for r := 0; r < h; r++ {
		page := r / 8
		bit := byte(1) << (r % 8)
		for c := 0; c < w; c++ {
			d.fb.SetPixel(x+c, y+r, data[c+page*w]&bit != 0)
		}
	}
}
