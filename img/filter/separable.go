package filter

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
)

// rowSink receives one finished output row. acc holds width*channels
// float64 samples and is reused between rows, so the sink must consume
// it before returning.
type rowSink func(y int, acc []float64)

// runSeparable applies a square window to src row by row and hands each
// accumulated row to sink. A nil taps slice selects a box window summed
// with running sums; otherwise taps weights both passes. divisor is
// applied to the accumulated samples once per row; box normalization
// divides rather than multiplying by the reciprocal so that constant
// regions reproduce exactly.
func runSeparable[T core.Element](src core.Image[T], ksize int, taps []float64, divisor float64, mode border.Mode, sink rowSink) error {
	w, h, c := src.Width, src.Height, src.Channels
	r := ksize / 2

	padded := make([]float64, (w+2*r)*c)
	left, right := borderIndexTables(r, w, mode)

	var fc *fftConvolver
	if taps != nil && ksize >= fftKernelThreshold {
		var err error
		fc, err = newFFTConvolver(taps, w+2*r)
		if err != nil {
			return err
		}
	}

	// Ring of horizontally filtered rows keyed by source row index.
	// A window spans at most ksize consecutive resolved rows, so the
	// modular slot assignment never evicts a row still in use.
	hrows := make([][]float64, ksize)
	hheld := make([]int, ksize)
	for i := range hheld {
		hheld[i] = -1
	}
	hrow := func(sy int) ([]float64, error) {
		slot := sy % ksize
		if hheld[slot] == sy {
			return hrows[slot], nil
		}
		if hrows[slot] == nil {
			hrows[slot] = make([]float64, w*c)
		}
		buildPaddedRow(padded, src.Row(sy), w, c, r, left, right)
		switch {
		case taps == nil:
			hboxRow(hrows[slot], padded, ksize, c)
		case fc != nil:
			if err := fc.convolveRow(hrows[slot], padded, c); err != nil {
				return nil, err
			}
		default:
			htapRow(hrows[slot], padded, taps, c)
		}
		hheld[slot] = sy
		return hrows[slot], nil
	}

	acc := make([]float64, w*c)
	tmp := make([]float64, w*c)
	for y := 0; y < h; y++ {
		first := true
		for t := 0; t < ksize; t++ {
			sy, ok := border.Resolve(mode, y-r+t, h)
			if !ok {
				continue // zero row, contributes nothing
			}
			row, err := hrow(sy)
			if err != nil {
				return err
			}
			switch {
			case taps == nil && first:
				copy(acc, row)
			case taps == nil:
				vecmath.AddBlockInPlace(acc, row)
			case first:
				vecmath.ScaleBlock(acc, row, taps[t])
			default:
				vecmath.ScaleBlock(tmp, row, taps[t])
				vecmath.AddBlockInPlace(acc, tmp)
			}
			first = false
		}
		if divisor != 1 {
			for i := range acc {
				acc[i] /= divisor
			}
		}
		sink(y, acc)
	}
	return nil
}

// borderIndexTables resolves the r source columns extending past each
// edge once per call. An entry of -1 marks a zero-filled column.
func borderIndexTables(r, w int, mode border.Mode) (left, right []int) {
	left = make([]int, r)
	right = make([]int, r)
	for j := 0; j < r; j++ {
		if sx, ok := border.Resolve(mode, j-r, w); ok {
			left[j] = sx
		} else {
			left[j] = -1
		}
		if sx, ok := border.Resolve(mode, w+j, w); ok {
			right[j] = sx
		} else {
			right[j] = -1
		}
	}
	return left, right
}

// buildPaddedRow converts one source row to float64 with r border
// columns resolved on each side, so the filter loops stay branch-free.
func buildPaddedRow[T core.Element](padded []float64, srow []T, w, c, r int, left, right []int) {
	mid := padded[r*c : (r+w)*c]
	for i, v := range srow {
		mid[i] = float64(v)
	}
	for j, sx := range left {
		dst := padded[j*c : j*c+c]
		if sx < 0 {
			for ch := range dst {
				dst[ch] = 0
			}
			continue
		}
		copy(dst, mid[sx*c:sx*c+c])
	}
	for j, sx := range right {
		off := (r + w + j) * c
		dst := padded[off : off+c]
		if sx < 0 {
			for ch := range dst {
				dst[ch] = 0
			}
			continue
		}
		copy(dst, mid[sx*c:sx*c+c])
	}
}

// hboxRow computes running horizontal window sums over a padded row.
// Sums of uint8 samples stay integer-valued in float64, so sliding the
// window is exact.
func hboxRow(dst, padded []float64, ksize, c int) {
	w := len(dst) / c
	for ch := 0; ch < c; ch++ {
		sum := 0.0
		for t := 0; t < ksize; t++ {
			sum += padded[t*c+ch]
		}
		dst[ch] = sum
		for x := 1; x < w; x++ {
			sum += padded[(x+ksize-1)*c+ch] - padded[(x-1)*c+ch]
			dst[x*c+ch] = sum
		}
	}
}

// htapRow computes the weighted horizontal pass directly. Taps are c
// samples apart in the padded row, one pixel per step.
func htapRow(dst, padded, taps []float64, c int) {
	for i := range dst {
		sum := 0.0
		for t, wt := range taps {
			sum += wt * padded[i+t*c]
		}
		dst[i] = sum
	}
}
