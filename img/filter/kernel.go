package filter

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Fixed coefficients for small kernels with derived sigma, indexed by
// ksize/2. These match the classic blur tables rather than the sigma
// formula, which is what reference implementations ship.
var smallGaussianTab = [...][]float64{
	{1},
	{0.25, 0.5, 0.25},
	{0.0625, 0.25, 0.375, 0.25, 0.0625},
	{0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// GaussianKernel returns the normalized 1-D Gaussian taps for an odd ksize.
// A non-positive sigma derives the deviation from the window size as
// 0.3*((ksize-1)*0.5 - 1) + 0.8, with fixed tables for ksize <= 7.
func GaussianKernel(ksize int, sigma float64) ([]float64, error) {
	if ksize <= 0 || ksize%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrKernelSize, ksize)
	}
	if sigma <= 0 && ksize <= 7 {
		return append([]float64(nil), smallGaussianTab[ksize/2]...), nil
	}
	if sigma <= 0 {
		sigma = 0.3*(float64(ksize-1)*0.5-1) + 0.8
	}

	taps := make([]float64, ksize)
	r := ksize / 2
	s2 := 2 * sigma * sigma
	for i := range taps {
		d := float64(i - r)
		taps[i] = math.Exp(-d * d / s2)
	}

	sum := vecmath.Sum(taps)
	for i := range taps {
		taps[i] /= sum
	}
	return taps, nil
}
