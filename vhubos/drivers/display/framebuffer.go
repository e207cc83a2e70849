package display

// Framebuffer is a 1bpp pixel grid in SSD1306 page-major layout: byte
// x + (y/8)*width holds the column slice for rows y/8*8..y/8*8+7, bit y%8.
// It is owned by the Driver; tasks reach it only through the Driver's
// drawing primitives.
type Framebuffer struct {
	width  int
	height int
	buf    []byte
}

func newFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, width*height/8),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// SetPixel sets or clears one pixel. Out-of-bounds writes are dropped.
func (f *Framebuffer) SetPixel(x, y int, on bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	idx := x + (y/8)*f.width
	bit := byte(1) << (y % 8)
	if on {
		f.buf[idx] |= bit
	} else {
		f.buf[idx] &^= bit
	}
}

// Pixel reports the state of one pixel. Out-of-bounds reads are off.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.buf[x+(y/8)*f.width]&(byte(1)<<(y%8)) != 0
}

// Fill sets every pixel to the given state.
func (f *Framebuffer) Fill(on bool) {
	var v byte
	if on {
		v = 0xFF
	}
	for i := range f.buf {
		f.buf[i] = v
	}
}
