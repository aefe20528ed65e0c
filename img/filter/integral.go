package filter

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-image/img/core"
)

// Integral computes the summed-area table of a single-channel uint8
// image. sum must hold (width+1)*(height+1) entries; row 0 and column 0
// are zero, and sum[(y+1)*(w+1)+x+1] is the sum of all pixels in the
// rectangle [0,x] x [0,y]. Any window sum then costs four lookups.
func Integral(sum []int64, src core.Image[uint8]) error {
	if err := validateIntegral(len(sum), src); err != nil {
		return err
	}
	w := src.Width
	sw := w + 1
	for x := 0; x < sw; x++ {
		sum[x] = 0
	}
	for y := 0; y < src.Height; y++ {
		srow := src.Row(y)
		prev := sum[y*sw : (y+1)*sw]
		cur := sum[(y+1)*sw : (y+2)*sw]
		cur[0] = 0
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(srow[x])
			cur[x+1] = prev[x+1] + rowSum
		}
	}
	return nil
}

// IntegralSq computes the summed-area tables of the pixel values and of
// their squares in one pass. sum and sq follow the Integral layout; the
// squared sums are float64 since they overflow int32 quickly and feed
// variance arithmetic directly.
func IntegralSq(sum []int64, sq []float64, src core.Image[uint8]) error {
	if err := validateIntegral(len(sum), src); err != nil {
		return err
	}
	if err := validateIntegral(len(sq), src); err != nil {
		return err
	}
	w := src.Width
	sw := w + 1
	for x := 0; x < sw; x++ {
		sum[x] = 0
		sq[x] = 0
	}
	rowF := make([]float64, w)
	rowSq := make([]float64, w)
	for y := 0; y < src.Height; y++ {
		srow := src.Row(y)
		for x, v := range srow {
			rowF[x] = float64(v)
		}
		vecmath.MulBlock(rowSq, rowF, rowF)

		prev := sum[y*sw : (y+1)*sw]
		cur := sum[(y+1)*sw : (y+2)*sw]
		prevSq := sq[y*sw : (y+1)*sw]
		curSq := sq[(y+1)*sw : (y+2)*sw]
		cur[0] = 0
		curSq[0] = 0
		var rowSum int64
		var rowSumSq float64
		for x := 0; x < w; x++ {
			rowSum += int64(srow[x])
			rowSumSq += rowSq[x]
			cur[x+1] = prev[x+1] + rowSum
			curSq[x+1] = prevSq[x+1] + rowSumSq
		}
	}
	return nil
}

func validateIntegral(n int, src core.Image[uint8]) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if src.Channels != 1 {
		return fmt.Errorf("%w: integral images need a single channel, got %d", core.ErrInvalidChannels, src.Channels)
	}
	need := (src.Width + 1) * (src.Height + 1)
	if n < need {
		return fmt.Errorf("%w: integral buffer has %d entries, need %d", core.ErrShortBuffer, n, need)
	}
	return nil
}
