//go:build (!amd64 && !arm64) || purego

package threshold

import (
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/generic"
	_ "github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"
)
