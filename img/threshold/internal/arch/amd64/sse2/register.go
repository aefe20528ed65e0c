//go:build amd64 && !purego

package sse2

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "sse2",
		SIMDLevel: cpu.SIMDSSE2,
		Priority:  10,
		Row:       row,
		Scalar:    scalar,
	})
}

// row is a 2x-unrolled kernel for SSE2-capable CPUs.
func row(dst, src []uint8, stat []float64, delta float64, set, clear uint8) {
	i := 0
	n := len(src)
	for ; i+1 < n; i += 2 {
		v0 := clear
		if float64(src[i]) > stat[i]-delta {
			v0 = set
		}
		v1 := clear
		if float64(src[i+1]) > stat[i+1]-delta {
			v1 = set
		}
		dst[i] = v0
		dst[i+1] = v1
	}
	if i < n {
		if float64(src[i]) > stat[i]-delta {
			dst[i] = set
		} else {
			dst[i] = clear
		}
	}
}

func scalar(dst, src []uint8, thresh float64, set, clear uint8) {
	i := 0
	n := len(src)
	for ; i+1 < n; i += 2 {
		v0 := clear
		if float64(src[i]) > thresh {
			v0 = set
		}
		v1 := clear
		if float64(src[i+1]) > thresh {
			v1 = set
		}
		dst[i] = v0
		dst[i+1] = v1
	}
	if i < n {
		if float64(src[i]) > thresh {
			dst[i] = set
		} else {
			dst[i] = clear
		}
	}
}
