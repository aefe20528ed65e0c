package filter

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// fftKernelThreshold is the tap count above which the weighted
// horizontal pass switches from the direct loop to frequency-domain
// convolution. Below it the direct loop wins on setup cost alone.
const fftKernelThreshold = 129

// fftConvolver convolves padded rows with a fixed symmetric kernel in
// the frequency domain. The kernel spectrum is computed once and reused
// for every row of the image.
type fftConvolver struct {
	plan      *algofft.Plan[complex128]
	kernelFFT []complex128
	work      []complex128
	rowFFT    []complex128
	chIn      []float64
	fftSize   int
	rowLen    int
	klen      int
}

// newFFTConvolver plans an FFT large enough for one padded row plus the
// kernel tail and precomputes the kernel spectrum.
func newFFTConvolver(taps []float64, rowLen int) (*fftConvolver, error) {
	fftSize := nextPowerOf2(rowLen + len(taps) - 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("filter: failed to create FFT plan: %w", err)
	}

	fc := &fftConvolver{
		plan:      plan,
		kernelFFT: make([]complex128, fftSize),
		work:      make([]complex128, fftSize),
		rowFFT:    make([]complex128, fftSize),
		chIn:      make([]float64, rowLen),
		fftSize:   fftSize,
		rowLen:    rowLen,
		klen:      len(taps),
	}

	for i, v := range taps {
		fc.work[i] = complex(v, 0)
	}
	for i := len(taps); i < fftSize; i++ {
		fc.work[i] = 0
	}
	if err := fc.plan.Forward(fc.kernelFFT, fc.work); err != nil {
		return nil, fmt.Errorf("filter: kernel FFT failed: %w", err)
	}
	return fc, nil
}

// convolveRow filters one padded row per channel. For a symmetric
// kernel the correlation the filter needs equals linear convolution
// offset by klen-1, which is where the valid samples are read from.
func (fc *fftConvolver) convolveRow(dst, padded []float64, c int) error {
	w := len(dst) / c
	for ch := 0; ch < c; ch++ {
		for j := 0; j < fc.rowLen; j++ {
			fc.chIn[j] = padded[j*c+ch]
		}
		if err := fc.convolve(); err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			dst[x*c+ch] = real(fc.work[x+fc.klen-1])
		}
	}
	return nil
}

func (fc *fftConvolver) convolve() error {
	for j, v := range fc.chIn {
		fc.work[j] = complex(v, 0)
	}
	for j := fc.rowLen; j < fc.fftSize; j++ {
		fc.work[j] = 0
	}
	if err := fc.plan.Forward(fc.rowFFT, fc.work); err != nil {
		return fmt.Errorf("filter: row FFT failed: %w", err)
	}
	for j := range fc.rowFFT {
		fc.rowFFT[j] *= fc.kernelFFT[j]
	}
	if err := fc.plan.Inverse(fc.work, fc.rowFFT); err != nil {
		return fmt.Errorf("filter: inverse FFT failed: %w", err)
	}
	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
