package fkoch

import "math"

// Smoothed returns a Gaussian-blurred copy of the volume using a
// separable kernel of standard deviation sigma (in grid units) applied
// along each axis in turn. The kernel is truncated at 4 sigma and the
// signal is reflected at the volume boundary. Smoothing knocks down the
// faceting the discrete grid leaves on extracted surfaces at moderate
// resolutions. sigma <= 0 returns the receiver unchanged.
func (v *Volume) Smoothed(sigma float64) *Volume {
	if sigma <= 0 {
		return v
	}
	kernel := gaussianKernel(sigma)
	n := v.grid.Samples
	src := make([]float64, len(v.data))
	copy(src, v.data)
	dst := make([]float64, len(v.data))
	// Pass per axis: the first stride walks the convolved axis, the
	// other two enumerate its n² line origins.
	for _, stride := range [3][3]int{
		{n * n, n, 1},
		{n, n * n, 1},
		{1, n * n, n},
	} {
		convolveAxis(dst, src, n, stride, kernel)
		src, dst = dst, src
	}
	return &Volume{grid: v.grid, data: src}
}

// gaussianKernel returns normalized weights for offsets [-r, r] with
// r = int(4*sigma + 0.5), stored from offset -r upwards.
func gaussianKernel(sigma float64) []float64 {
	r := int(4*sigma + 0.5)
	if r < 1 {
		r = 1
	}
	k := make([]float64, 2*r+1)
	sum := 0.0
	for i := range k {
		x := float64(i - r)
		k[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// convolveAxis convolves every length-n line along one axis of the
// cube held in src and writes the result to dst. stride[0] is the
// element distance between neighbors along the axis; stride[1] and
// stride[2] span the n² line origins.
func convolveAxis(dst, src []float64, n int, stride [3]int, kernel []float64) {
	r := len(kernel) / 2
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			origin := a*stride[1] + b*stride[2]
			for x := 0; x < n; x++ {
				acc := 0.0
				for t := -r; t <= r; t++ {
					acc += kernel[t+r] * src[origin+reflect(x+t, n)*stride[0]]
				}
				dst[origin+x*stride[0]] = acc
			}
		}
	}
}

// reflect maps an out-of-range line index into [0, n) by mirroring
// about the array edges, duplicating the edge sample.
func reflect(i, n int) int {
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
