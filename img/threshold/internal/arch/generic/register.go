package generic

import (
	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Row:       row,
		Scalar:    scalar,
	})
}

func row(dst, src []uint8, stat []float64, delta float64, set, clear uint8) {
	for i, s := range src {
		if float64(s) > stat[i]-delta {
			dst[i] = set
		} else {
			dst[i] = clear
		}
	}
}

func scalar(dst, src []uint8, thresh float64, set, clear uint8) {
	for i, s := range src {
		if float64(s) > thresh {
			dst[i] = set
		} else {
			dst[i] = clear
		}
	}
}
