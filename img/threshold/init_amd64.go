//go:build amd64 && !purego

package threshold

import (
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/amd64/avx2" // register AVX2 backend
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/amd64/sse2" // register SSE2 backend
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/generic"    // register generic backend
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"   // initialize backend registry
)
