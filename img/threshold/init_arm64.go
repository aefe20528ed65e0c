//go:build arm64 && !purego

package threshold

import (
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/arm64/neon"
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/generic"
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"
)
