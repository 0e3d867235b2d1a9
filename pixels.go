package uview

import (
	"fmt"
	"image"
)

// PixelGrid is a Height x Width greyscale image, row 0 at the top.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint16 // Row-major, len(Pix) == Width*Height.
}

// At returns the sample at column x, row y.
func (g *PixelGrid) At(x, y int) uint16 {
	return g.Pix[y*g.Width+x]
}

// Row returns row y. The slice aliases Pix.
func (g *PixelGrid) Row(y int) []uint16 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Gray16 returns a copy of the grid as an image.
func (g *PixelGrid) Gray16() *image.Gray16 {
	m := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Pix {
		m.Pix[2*i] = uint8(v >> 8)
		m.Pix[2*i+1] = uint8(v)
	}
	return m
}

// extractPixels reads the width*height uint16 samples ending the file.
// Rows are stored bottom-up and are flipped so that row 0 is the top row.
func extractPixels(buf []byte, width, height int) (*PixelGrid, error) {
	n := 2 * width * height
	if n > len(buf) {
		return nil, FormatError(fmt.Sprintf("image of %dx%d needs %d bytes, file has %d", width, height, n, len(buf)))
	}
	raw := buf[len(buf)-n:]

	g := &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint16, width*height),
	}
	for y := 0; y < height; y++ {
		src := raw[2*width*(height-1-y):]
		dst := g.Row(y)
		for x := range dst {
			dst[x] = le.Uint16(src[2*x:])
		}
	}
	return g, nil
}
