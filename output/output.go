// Package output exports decoded UView images.
package output

import (
	"image"
	"io"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/mat"

	"github.com/zhulincqu/uview"
)

// WriteTIFF writes g as a deflate-compressed 16-bit greyscale TIFF.
func WriteTIFF(w io.Writer, g *uview.PixelGrid) error {
	err := tiff.Encode(w, g.Gray16(), &tiff.Options{Compression: tiff.Deflate})
	return errors.Wrap(err, "could not encode TIFF")
}

// HDR returns m as a grey HDR image. Negative values are clipped to 0.
func HDR(m mat.Matrix) *hdr.RGB {
	r, c := m.Dims()
	img := hdr.NewRGB(image.Rect(0, 0, c, r))
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			v := m.At(y, x)
			if v < 0 {
				v = 0
			}
			img.SetRGB(x, y, hdrcolor.RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// WriteHDR writes m as a Radiance RGBE image, see HDR.
func WriteHDR(w io.Writer, m mat.Matrix) error {
	return errors.Wrap(rgbe.Encode(w, HDR(m)), "could not encode HDR")
}

// Save creates path and writes to it with fn.
func Save(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "could not create file")
	}
	if err = fn(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "could not close file")
}
