package warp

import (
	"math"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
)

func warpNearest[T core.Element](dst, src core.Image[T], mapper rowMapper, b border.Border[T]) {
	s := getRowScratch(dst.Width, false)
	defer putRowScratch(s)

	fill := b.Fill(src.Channels)

	for y := 0; y < dst.Height; y++ {
		mapper.MapRow(y, s.xs, s.ys)
		prepareNearestRow(s, src, b.Mode)

		drow := dst.Row(y)
		switch src.Channels {
		case 1:
			storeNearest1(drow, src.Pix, s, fill)
		case 3:
			storeNearest3(drow, src.Pix, s, fill)
		case 4:
			storeNearest4(drow, src.Pix, s, fill)
		default:
			storeNearestN(drow, src.Pix, s, fill, src.Channels)
		}
	}
}

// prepareNearestRow rounds the mapped coordinates and resolves each to a
// source offset in o00, a fill marker (-1), or a masked-out pixel. Border
// branching stays here so the store loops run branch-free over policy.
func prepareNearestRow[T core.Element](s *rowScratch, src core.Image[T], mode border.Mode) {
	w, h := src.Width, src.Height
	fw, fh := float64(w), float64(h)
	stride, c := src.Stride, src.Channels

	for i, sx := range s.xs {
		// Ties round toward the lower index.
		rx := math.Ceil(sx - 0.5)
		ry := math.Ceil(s.ys[i] - 0.5)

		if rx >= 0 && rx < fw && ry >= 0 && ry < fh {
			s.o00[i] = int(ry)*stride + int(rx)*c
			s.mask[i] = 1
			continue
		}

		switch mode {
		case border.Replicate, border.Reflect:
			ix, _ := resolveIndex(mode, rx, w)
			iy, _ := resolveIndex(mode, ry, h)
			s.o00[i] = iy*stride + ix*c
			s.mask[i] = 1
		case border.Constant:
			s.o00[i] = -1
			s.mask[i] = 1
		default:
			s.mask[i] = 0
		}
	}
}

func storeNearest1[T core.Element](drow, pix []T, s *rowScratch, fill []T) {
	f0 := fill[0]
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		if o := s.o00[i]; o >= 0 {
			drow[i] = pix[o]
		} else {
			drow[i] = f0
		}
	}
}

func storeNearest3[T core.Element](drow, pix []T, s *rowScratch, fill []T) {
	f0, f1, f2 := fill[0], fill[1], fill[2]
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		d := i * 3
		if o := s.o00[i]; o >= 0 {
			drow[d] = pix[o]
			drow[d+1] = pix[o+1]
			drow[d+2] = pix[o+2]
		} else {
			drow[d] = f0
			drow[d+1] = f1
			drow[d+2] = f2
		}
	}
}

func storeNearest4[T core.Element](drow, pix []T, s *rowScratch, fill []T) {
	f0, f1, f2, f3 := fill[0], fill[1], fill[2], fill[3]
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		d := i * 4
		if o := s.o00[i]; o >= 0 {
			drow[d] = pix[o]
			drow[d+1] = pix[o+1]
			drow[d+2] = pix[o+2]
			drow[d+3] = pix[o+3]
		} else {
			drow[d] = f0
			drow[d+1] = f1
			drow[d+2] = f2
			drow[d+3] = f3
		}
	}
}

// storeNearestN is the generic per-channel loop the unrolled variants must
// agree with.
func storeNearestN[T core.Element](drow, pix []T, s *rowScratch, fill []T, c int) {
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		d := i * c
		if o := s.o00[i]; o >= 0 {
			copy(drow[d:d+c], pix[o:o+c])
		} else {
			copy(drow[d:d+c], fill)
		}
	}
}
