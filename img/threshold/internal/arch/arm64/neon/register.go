//go:build arm64 && !purego

package neon

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "neon",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  15,
		Row:       row,
		Scalar:    scalar,
	})
}

// row is a 4x-unrolled kernel selected for NEON-capable CPUs.
func row(dst, src []uint8, stat []float64, delta float64, set, clear uint8) {
	i := 0
	n := len(src)
	for ; i+3 < n; i += 4 {
		v0 := clear
		if float64(src[i]) > stat[i]-delta {
			v0 = set
		}
		v1 := clear
		if float64(src[i+1]) > stat[i+1]-delta {
			v1 = set
		}
		v2 := clear
		if float64(src[i+2]) > stat[i+2]-delta {
			v2 = set
		}
		v3 := clear
		if float64(src[i+3]) > stat[i+3]-delta {
			v3 = set
		}
		dst[i] = v0
		dst[i+1] = v1
		dst[i+2] = v2
		dst[i+3] = v3
	}
	for ; i < n; i++ {
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
	for ; i+3 < n; i += 4 {
		v0 := clear
		if float64(src[i]) > thresh {
			v0 = set
		}
		v1 := clear
		if float64(src[i+1]) > thresh {
			v1 = set
		}
		v2 := clear
		if float64(src[i+2]) > thresh {
			v2 = set
		}
		v3 := clear
		if float64(src[i+3]) > thresh {
			v3 = set
		}
		dst[i] = v0
		dst[i+1] = v1
		dst[i+2] = v2
		dst[i+3] = v3
	}
	for ; i < n; i++ {
		if float64(src[i]) > thresh {
			dst[i] = set
		} else {
			dst[i] = clear
		}
	}
}
