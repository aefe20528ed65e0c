package warp

import (
	"sync"

	"github.com/cwbudde/algo-image/img/core"
)

// rowScratch holds the per-row staging arrays: mapped coordinates, resolved
// sample offsets, interpolation fractions, and the write mask. One scratch
// serves a whole warp call and returns to the pool afterwards.
type rowScratch struct {
	xs, ys []float64
	fx, fy []float64

	// Sample offsets into the source Pix slice, -1 for "use fill value".
	// Nearest uses o00 only.
	o00, o01, o10, o11 []int

	// 1 = write the destination pixel, 0 = leave untouched.
	mask []uint8
}

var rowPool = sync.Pool{
	New: func() any { return &rowScratch{} },
}

func getRowScratch(width int, linear bool) *rowScratch {
	s := rowPool.Get().(*rowScratch)
	s.xs = core.EnsureLen(s.xs, width)
	s.ys = core.EnsureLen(s.ys, width)
	s.o00 = core.EnsureLen(s.o00, width)
	s.mask = core.EnsureLen(s.mask, width)
	if linear {
		s.fx = core.EnsureLen(s.fx, width)
		s.fy = core.EnsureLen(s.fy, width)
		s.o01 = core.EnsureLen(s.o01, width)
		s.o10 = core.EnsureLen(s.o10, width)
		s.o11 = core.EnsureLen(s.o11, width)
	}
	return s
}

func putRowScratch(s *rowScratch) {
	rowPool.Put(s)
}
