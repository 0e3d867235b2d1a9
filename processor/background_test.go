package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/zhulincqu/uview"
)

func grid(w, h int, fill func(x, y int) uint16) *uview.PixelGrid {
	g := &uview.PixelGrid{Width: w, Height: h, Pix: make([]uint16, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Pix[y*w+x] = fill(x, y)
		}
	}
	return g
}

func TestKernel(t *testing.T) {
	k := Kernel(2)
	assert.Len(t, k, 2*8+1)
	assert.InDelta(t, 1, floats.Sum(k), 1e-12)
	assert.Equal(t, k[0], k[len(k)-1])
	assert.Equal(t, floats.Max(k), k[8])
}

func TestMirror(t *testing.T) {
	for _, tc := range []struct{ i, n, want int }{
		{-1, 4, 0}, {-2, 4, 1}, {4, 4, 3}, {5, 4, 2}, {2, 4, 2}, {-3, 1, 0}, {9, 3, 2},
	} {
		assert.Equal(t, tc.want, mirror(tc.i, tc.n), "mirror(%d, %d)", tc.i, tc.n)
	}
}

func TestNormalize(t *testing.T) {
	m := Normalize(grid(2, 2, func(x, y int) uint16 { return uint16(100 * (x + 2*y)) }))
	assert.Equal(t, 1.0, mat.Max(m))
	assert.InDelta(t, 1.0/3, m.At(0, 1), 1e-12)

	zero := Normalize(grid(2, 2, func(x, y int) uint16 { return 0 }))
	assert.Equal(t, 0.0, mat.Max(zero))
}

func TestUniformImageHasNoBackground(t *testing.T) {
	out := SubtractBackground(grid(16, 8, func(x, y int) uint16 { return 500 }), 3)
	r, c := out.Dims()
	assert.Equal(t, 8, r)
	assert.Equal(t, 16, c)
	assert.InDelta(t, 0, mat.Max(out), 1e-12)
	assert.InDelta(t, 0, mat.Min(out), 1e-12)
}

func TestGaussianFilterKeepsMass(t *testing.T) {
	m := mat.NewDense(21, 21, nil)
	m.Set(10, 10, 1)

	blurred := GaussianFilter(m, 1.5)
	assert.InDelta(t, 1, mat.Sum(blurred), 1e-12)
	assert.Less(t, blurred.At(10, 10), 1.0)
	assert.InDelta(t, blurred.At(10, 9), blurred.At(9, 10), 1e-15)
	assert.Equal(t, 1.0, m.At(10, 10))
}

func TestGaussianFilterZeroSigma(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.True(t, mat.Equal(m, GaussianFilter(m, 0)))
}

func TestSpotSurvivesSubtraction(t *testing.T) {
	g := grid(32, 32, func(x, y int) uint16 {
		if x == 16 && y == 16 {
			return 4000
		}
		return 1000
	})
	out := SubtractBackground(g, DefaultSigma)
	assert.Greater(t, out.At(16, 16), 0.5)
	assert.Less(t, out.At(0, 0), 0.0)
}
