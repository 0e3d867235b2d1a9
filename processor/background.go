// Package processor holds image operations on decoded UView grids.
package processor

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/zhulincqu/uview"
)

// DefaultSigma is the Gaussian width used for LEED background removal.
const DefaultSigma = 15

// truncate is the kernel half-width in units of sigma.
const truncate = 4.0

// Normalize returns g as a matrix scaled so that its maximum is 1.
// An all-zero grid stays zero.
func Normalize(g *uview.PixelGrid) *mat.Dense {
	data := make([]float64, len(g.Pix))
	for i, v := range g.Pix {
		data[i] = float64(v)
	}
	if max := floats.Max(data); max > 0 {
		floats.Scale(1/max, data)
	}
	return mat.NewDense(g.Height, g.Width, data)
}

// SubtractBackground removes the slowly varying inelastic background of
// a LEED image: the normalized image minus its Gaussian blur. The result
// is a high-pass image that may hold negative values.
func SubtractBackground(g *uview.PixelGrid, sigma float64) *mat.Dense {
	a := Normalize(g)
	var out mat.Dense
	out.Sub(a, GaussianFilter(a, sigma))
	return &out
}

// GaussianFilter blurs m with a separable Gaussian of standard deviation
// sigma. Borders are extended by mirroring (d c b a | a b c d | d c b a)
// and the kernel is cut at 4 sigma. sigma <= 0 returns a copy of m.
func GaussianFilter(m mat.Matrix, sigma float64) *mat.Dense {
	r, c := m.Dims()
	out := mat.DenseCopyOf(m)
	if sigma <= 0 {
		return out
	}
	k := Kernel(sigma)

	row := make([]float64, c)
	for i := 0; i < r; i++ {
		copy(row, out.RawRowView(i))
		convolve(out.RawRowView(i), row, k)
	}

	col := make([]float64, r)
	res := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, out)
		convolve(res, col, k)
		out.SetCol(j, res)
	}
	return out
}

// Kernel returns the normalized Gaussian weights for offsets -radius..radius.
func Kernel(sigma float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	k := make([]float64, 2*radius+1)
	for i := range k {
		x := float64(i - radius)
		k[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(k), k)
	return k
}

// convolve writes src convolved with k to dst.
func convolve(dst, src, k []float64) {
	radius := len(k) / 2
	n := len(src)
	for i := range dst {
		var s float64
		for j, w := range k {
			s += w * src[mirror(i+j-radius, n)]
		}
		dst[i] = s
	}
}

// mirror maps i into [0, n) by reflecting about the edges, the edge
// sample included.
func mirror(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}
