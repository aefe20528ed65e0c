// Package resize rescales images with nearest or bilinear sampling
// under the half-pixel-center convention.
package resize

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-image/img/core"
)

// Nearest rescales src to the dimensions of dst, picking for every
// destination pixel the source pixel whose center is closest under the
// half-pixel mapping. dst and src must share a channel count and must
// not alias.
func Nearest[T core.Element](dst, src core.Image[T]) error {
	if err := validate(dst, src); err != nil {
		return err
	}
	c := src.Channels
	scaleX := float64(src.Width) / float64(dst.Width)
	scaleY := float64(src.Height) / float64(dst.Height)

	xOff := make([]int, dst.Width)
	for x := range xOff {
		sx := int(math.Floor((float64(x) + 0.5) * scaleX))
		if sx > src.Width-1 {
			sx = src.Width - 1
		}
		xOff[x] = sx * c
	}

	for y := 0; y < dst.Height; y++ {
		sy := int(math.Floor((float64(y) + 0.5) * scaleY))
		if sy > src.Height-1 {
			sy = src.Height - 1
		}
		srow := src.Row(sy)
		drow := dst.Row(y)
		if c == 1 {
			for x, o := range xOff {
				drow[x] = srow[o]
			}
			continue
		}
		for x, o := range xOff {
			copy(drow[x*c:x*c+c], srow[o:o+c])
		}
	}
	return nil
}

// Linear rescales src to the dimensions of dst with bilinear sampling,
// replicating edges. Equal dimensions reproduce src exactly. dst and
// src must share a channel count and must not alias.
func Linear[T core.Element](dst, src core.Image[T]) error {
	if err := validate(dst, src); err != nil {
		return err
	}
	c := src.Channels
	x0, x1, wx := axisTable(dst.Width, src.Width, c)
	y0, _, wy := axisTable(dst.Height, src.Height, 1)

	rowLen := dst.Width * c
	hrow0 := make([]float64, rowLen)
	hrow1 := make([]float64, rowLen)
	acc := make([]float64, rowLen)
	tmp := make([]float64, rowLen)
	held0, held1 := -1, -1

	for y := 0; y < dst.Height; y++ {
		sy0 := y0[y]
		sy1 := sy0 + 1
		if sy1 > src.Height-1 {
			sy1 = src.Height - 1
		}

		// Consecutive outputs usually reuse one of the two source rows.
		if held0 != sy0 {
			if held1 == sy0 {
				hrow0, hrow1 = hrow1, hrow0
				held0, held1 = held1, held0
			} else {
				hinterp(hrow0, src.Row(sy0), x0, x1, wx, c)
				held0 = sy0
			}
		}
		if held1 != sy1 {
			hinterp(hrow1, src.Row(sy1), x0, x1, wx, c)
			held1 = sy1
		}

		w := wy[y]
		vecmath.ScaleBlock(acc, hrow0, 1-w)
		vecmath.ScaleBlock(tmp, hrow1, w)
		vecmath.AddBlockInPlace(acc, tmp)

		drow := dst.Row(y)
		for i, v := range acc {
			drow[i] = core.SaturateCast[T](v)
		}
	}
	return nil
}

// axisTable computes, per destination index, the leading source index
// and its fractional weight under the half-pixel mapping, clamped to
// the edges. Offsets are scaled by step elements.
func axisTable(dstN, srcN, step int) (i0, i1 []int, w []float64) {
	i0 = make([]int, dstN)
	i1 = make([]int, dstN)
	w = make([]float64, dstN)
	scale := float64(srcN) / float64(dstN)
	for i := 0; i < dstN; i++ {
		f := (float64(i)+0.5)*scale - 0.5
		s0 := int(math.Floor(f))
		fw := f - float64(s0)
		if s0 < 0 {
			s0 = 0
			fw = 0
		}
		s1 := s0 + 1
		if s1 > srcN-1 {
			s1 = srcN - 1
		}
		i0[i] = s0 * step
		i1[i] = s1 * step
		w[i] = fw
	}
	return i0, i1, w
}

func hinterp[T core.Element](dst []float64, srow []T, x0, x1 []int, wx []float64, c int) {
	for x := range x0 {
		o0, o1 := x0[x], x1[x]
		w := wx[x]
		d := x * c
		for ch := 0; ch < c; ch++ {
			p0 := float64(srow[o0+ch])
			p1 := float64(srow[o1+ch])
			dst[d+ch] = p0 + w*(p1-p0)
		}
	}
}

func validate[T core.Element](dst, src core.Image[T]) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if dst.Channels != src.Channels {
		return fmt.Errorf("%w: src %d, dst %d", core.ErrInvalidChannels, src.Channels, dst.Channels)
	}
	return nil
}
