package warp

import (
	"math"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
)

func warpLinear[T core.Element](dst, src core.Image[T], mapper rowMapper, b border.Border[T]) {
	s := getRowScratch(dst.Width, true)
	defer putRowScratch(s)

	fill := make([]float64, src.Channels)
	for i, v := range b.Fill(src.Channels) {
		fill[i] = float64(v)
	}

	for y := 0; y < dst.Height; y++ {
		mapper.MapRow(y, s.xs, s.ys)
		prepareLinearRow(s, src, b.Mode)

		drow := dst.Row(y)
		switch src.Channels {
		case 1:
			storeLinear1(drow, src.Pix, s, fill)
		case 3:
			storeLinear3(drow, src.Pix, s, fill)
		case 4:
			storeLinear4(drow, src.Pix, s, fill)
		default:
			storeLinearN(drow, src.Pix, s, fill, src.Channels)
		}
	}
}

// prepareLinearRow resolves the four sample offsets and fractions per
// destination pixel. Offsets are -1 where the Constant fill applies; a
// zero fraction collapses the following tap onto the leading one so a
// coordinate exactly on the last row or column stays in bounds.
func prepareLinearRow[T core.Element](s *rowScratch, src core.Image[T], mode border.Mode) {
	w, h := src.Width, src.Height
	fw1, fh1 := float64(w-1), float64(h-1)
	stride, c := src.Stride, src.Channels

	for i := range s.xs {
		sx, sy := s.xs[i], s.ys[i]

		// Interior fast path, including the exact right and bottom edges.
		if sx >= 0 && sx <= fw1 && sy >= 0 && sy <= fh1 {
			x0, y0 := int(sx), int(sy)
			fx := sx - float64(x0)
			fy := sy - float64(y0)
			x1, y1 := x0+1, y0+1
			if fx == 0 {
				x1 = x0
			}
			if fy == 0 {
				y1 = y0
			}

			top := y0 * stride
			bot := y1 * stride
			s.o00[i] = top + x0*c
			s.o01[i] = top + x1*c
			s.o10[i] = bot + x0*c
			s.o11[i] = bot + x1*c
			s.fx[i] = fx
			s.fy[i] = fy
			s.mask[i] = 1
			continue
		}

		if mode == border.Transparent {
			s.mask[i] = 0
			continue
		}

		fx0 := math.Floor(sx)
		fy0 := math.Floor(sy)
		fx := sx - fx0
		fy := sy - fy0
		if math.IsNaN(fx) {
			fx = 0
		}
		if math.IsNaN(fy) {
			fy = 0
		}

		switch mode {
		case border.Replicate, border.Reflect:
			x0, _ := resolveIndex(mode, fx0, w)
			x1, _ := resolveIndex(mode, fx0+1, w)
			y0, _ := resolveIndex(mode, fy0, h)
			y1, _ := resolveIndex(mode, fy0+1, h)

			top := y0 * stride
			bot := y1 * stride
			s.o00[i] = top + x0*c
			s.o01[i] = top + x1*c
			s.o10[i] = bot + x0*c
			s.o11[i] = bot + x1*c
		default: // Constant: each tap independently in bounds or fill.
			s.o00[i] = constantOffset(fx0, fy0, w, h, stride, c)
			s.o01[i] = constantOffset(fx0+1, fy0, w, h, stride, c)
			s.o10[i] = constantOffset(fx0, fy0+1, w, h, stride, c)
			s.o11[i] = constantOffset(fx0+1, fy0+1, w, h, stride, c)
		}
		s.fx[i] = fx
		s.fy[i] = fy
		s.mask[i] = 1
	}
}

func constantOffset(x, y float64, w, h, stride, c int) int {
	if x >= 0 && x < float64(w) && y >= 0 && y < float64(h) {
		return int(y)*stride + int(x)*c
	}
	return -1
}

func storeLinear1[T core.Element](drow, pix []T, s *rowScratch, fill []float64) {
	f0 := fill[0]
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		p00 := tap(pix, s.o00[i], 0, f0)
		p01 := tap(pix, s.o01[i], 0, f0)
		p10 := tap(pix, s.o10[i], 0, f0)
		p11 := tap(pix, s.o11[i], 0, f0)

		fx, fy := s.fx[i], s.fy[i]
		top := p00 + fx*(p01-p00)
		bot := p10 + fx*(p11-p10)
		drow[i] = core.SaturateCast[T](top + fy*(bot-top))
	}
}

func storeLinear3[T core.Element](drow, pix []T, s *rowScratch, fill []float64) {
	f0, f1, f2 := fill[0], fill[1], fill[2]
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		o00, o01, o10, o11 := s.o00[i], s.o01[i], s.o10[i], s.o11[i]
		fx, fy := s.fx[i], s.fy[i]
		d := i * 3

		p00 := tap(pix, o00, 0, f0)
		p01 := tap(pix, o01, 0, f0)
		p10 := tap(pix, o10, 0, f0)
		p11 := tap(pix, o11, 0, f0)
		top := p00 + fx*(p01-p00)
		bot := p10 + fx*(p11-p10)
		drow[d] = core.SaturateCast[T](top + fy*(bot-top))

		p00 = tap(pix, o00, 1, f1)
		p01 = tap(pix, o01, 1, f1)
		p10 = tap(pix, o10, 1, f1)
		p11 = tap(pix, o11, 1, f1)
		top = p00 + fx*(p01-p00)
		bot = p10 + fx*(p11-p10)
		drow[d+1] = core.SaturateCast[T](top + fy*(bot-top))

		p00 = tap(pix, o00, 2, f2)
		p01 = tap(pix, o01, 2, f2)
		p10 = tap(pix, o10, 2, f2)
		p11 = tap(pix, o11, 2, f2)
		top = p00 + fx*(p01-p00)
		bot = p10 + fx*(p11-p10)
		drow[d+2] = core.SaturateCast[T](top + fy*(bot-top))
	}
}

func storeLinear4[T core.Element](drow, pix []T, s *rowScratch, fill []float64) {
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		o00, o01, o10, o11 := s.o00[i], s.o01[i], s.o10[i], s.o11[i]
		fx, fy := s.fx[i], s.fy[i]
		d := i * 4

		for ch := 0; ch < 4; ch++ {
			f := fill[ch]
			p00 := tap(pix, o00, ch, f)
			p01 := tap(pix, o01, ch, f)
			p10 := tap(pix, o10, ch, f)
			p11 := tap(pix, o11, ch, f)
			top := p00 + fx*(p01-p00)
			bot := p10 + fx*(p11-p10)
			drow[d+ch] = core.SaturateCast[T](top + fy*(bot-top))
		}
	}
}

// storeLinearN is the generic per-channel loop the unrolled variants must
// agree with.
func storeLinearN[T core.Element](drow, pix []T, s *rowScratch, fill []float64, c int) {
	for i, m := range s.mask {
		if m == 0 {
			continue
		}
		o00, o01, o10, o11 := s.o00[i], s.o01[i], s.o10[i], s.o11[i]
		fx, fy := s.fx[i], s.fy[i]
		d := i * c

		for ch := 0; ch < c; ch++ {
			f := fill[ch]
			p00 := tap(pix, o00, ch, f)
			p01 := tap(pix, o01, ch, f)
			p10 := tap(pix, o10, ch, f)
			p11 := tap(pix, o11, ch, f)
			top := p00 + fx*(p01-p00)
			bot := p10 + fx*(p11-p10)
			drow[d+ch] = core.SaturateCast[T](top + fy*(bot-top))
		}
	}
}

func tap[T core.Element](pix []T, o, ch int, fill float64) float64 {
	if o < 0 {
		return fill
	}
	return float64(pix[o+ch])
}
