package filter

import (
	"fmt"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
)

// MeanMap writes the mean of the ksize x ksize neighborhood around each
// pixel of a single-channel uint8 image to dst, packed row-major at
// width*height with no stride padding. Edge neighborhoods replicate the
// nearest pixel. A constant image yields its value exactly at every
// position, for any window size.
func MeanMap(dst []float64, src core.Image[uint8], ksize int) error {
	if err := validateStat(dst, src, ksize); err != nil {
		return err
	}
	area := float64(ksize * ksize)
	return runSeparable(src, ksize, nil, area, border.Replicate, packRows(dst, src.Width))
}

// GaussianMap is MeanMap with Gaussian weighting. The deviation is
// derived from the window size as in GaussianKernel.
func GaussianMap(dst []float64, src core.Image[uint8], ksize int) error {
	if err := validateStat(dst, src, ksize); err != nil {
		return err
	}
	taps, err := GaussianKernel(ksize, 0)
	if err != nil {
		return err
	}
	return runSeparable(src, ksize, taps, 1, border.Replicate, packRows(dst, src.Width))
}

func packRows(dst []float64, width int) rowSink {
	return func(y int, acc []float64) {
		copy(dst[y*width:(y+1)*width], acc)
	}
}

func validateStat(dst []float64, src core.Image[uint8], ksize int) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if src.Channels != 1 {
		return fmt.Errorf("%w: statistic maps need a single channel, got %d", core.ErrInvalidChannels, src.Channels)
	}
	if ksize <= 0 || ksize%2 == 0 {
		return fmt.Errorf("%w: %d", ErrKernelSize, ksize)
	}
	if len(dst) < src.Width*src.Height {
		return fmt.Errorf("%w: statistic buffer has %d samples, need %d", core.ErrShortBuffer, len(dst), src.Width*src.Height)
	}
	return nil
}
