// Command mksplash converts a monochrome PNG into a page-major 1bpp Go
// source file suitable for DrawBitmap.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
)

func main() {
	var (
		inPath   = flag.String("in", "", "Input PNG file.")
		outPath  = flag.String("out", "", "Output Go file (default stdout).")
		pkg      = flag.String("pkg", "screens", "Package name for the generated file.")
		name     = flag.String("name", "logo", "Identifier prefix for the generated vars.")
		width    = flag.Int("w", 0, "Output width (default image width).")
		height   = flag.Int("h", 0, "Output height, rounded up to a multiple of 8 (default image height).")
		thresh   = flag.Int("threshold", 128, "Luma threshold (0..255); pixels at or above are on.")
		invertBg = flag.Bool("invert", false, "Invert pixel polarity.")
	)
	flag.Parse()

	if *inPath == "" {
		fatalf("usage: mksplash -in logo.png [-out logo.go] [-pkg screens] [-name logo] [-w N -h N]")
	}

	img, err := loadPNG(*inPath)
	if err != nil {
		fatalf("%v", err)
	}

	b := img.Bounds()
	w, h := *width, *height
	if w <= 0 {
		w = b.Dx()
	}
	if h <= 0 {
		h = b.Dy()
	}
	h = (h + 7) &^ 7

	bits := rasterize(img, w, h, *thresh, *invertBg)
	src := render(*pkg, *name, w, h, bits)

	if *outPath == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*outPath, src, 0o644); err != nil {
		fatalf("write %q: %v", *outPath, err)
	}
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// rasterize samples the image into page-major 1bpp: bit r%8 of byte
// c + (r/8)*w. Pixels outside the image are off.
func rasterize(img image.Image, w, h, thresh int, invert bool) []byte {
	b := img.Bounds()
	bits := make([]byte, w*(h/8))
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			px, py := b.Min.X+c, b.Min.Y+r
			if px >= b.Max.X || py >= b.Max.Y {
				continue
			}
			cr, cg, cb, ca := img.At(px, py).RGBA()
			if ca == 0 {
				continue
			}
			// ITU-R BT.601 luma, 16-bit channels scaled to 8-bit.
			luma := (299*int(cr>>8) + 587*int(cg>>8) + 114*int(cb>>8)) / 1000
			on := luma >= thresh
			if invert {
				on = !on
			}
			if on {
				bits[c+(r/8)*w] |= 1 << (r % 8)
			}
		}
	}
	return bits
}

func render(pkg, name string, w, h int, bits []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by mksplash -w %d -h %d; DO NOT EDIT.\n\n", w, h)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "const (\n\t%sWidth  = %d\n\t%sHeight = %d\n)\n\n", name, w, name, h)
	fmt.Fprintf(&buf, "var %sBits = []byte{\n", name)
	for i := 0; i < len(bits); i += 12 {
		end := i + 12
		if end > len(bits) {
			end = len(bits)
		}
		parts := make([]string, 0, 12)
		for _, by := range bits[i:end] {
			parts = append(parts, fmt.Sprintf("0x%02X", by))
		}
		fmt.Fprintf(&buf, "\t%s,\n", strings.Join(parts, ", "))
	}
	buf.WriteString("}\n")
	return buf.Bytes()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
