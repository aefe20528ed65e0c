// Package warp remaps images under affine and perspective transforms.
//
// The four kernels pair a transform family with a sampler:
//
//   - [AffineNearest] and [AffineLinear] take a 2x3 [geom.Affine]
//   - [PerspectiveNearest] and [PerspectiveLinear] take a 3x3 [geom.Perspective]
//
// Callers supply the forward source-to-destination transform; each kernel
// inverts it once and walks the destination row-major, fetching source
// pixels through the configured [border.Border] policy (inverse mapping).
//
// # Samplers
//
// Nearest rounds the mapped coordinate to the closest pixel, ties toward
// the lower index. Linear blends the four surrounding pixels bilinearly,
// accumulating in float64; uint8 results round to nearest and saturate,
// float32 results convert directly.
//
// # Validation
//
// Inputs are validated before any destination write. On a non-nil error
// the destination has not been modified by the call. Source and
// destination must not alias; aliased buffers are a precondition
// violation, not a checked error.
package warp

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/geom"
)

// rowMapper yields fractional source coordinates for one destination row.
// Both geom.Affine and geom.Perspective satisfy it.
type rowMapper interface {
	MapRow(y int, xs, ys []float64)
}

// AffineNearest warps src into dst under the forward affine transform m
// using nearest-neighbor sampling.
//
// A singular m is not an error: its inverse maps every destination pixel
// out of bounds and the border policy alone paints dst.
func AffineNearest[T core.Element](dst, src core.Image[T], m geom.Affine, b border.Border[T]) error {
	if err := validate(dst, src, b); err != nil {
		return err
	}
	warpNearest(dst, src, m.Invert(), b)
	return nil
}

// AffineLinear warps src into dst under the forward affine transform m
// using bilinear sampling.
func AffineLinear[T core.Element](dst, src core.Image[T], m geom.Affine, b border.Border[T]) error {
	if err := validate(dst, src, b); err != nil {
		return err
	}
	warpLinear(dst, src, m.Invert(), b)
	return nil
}

// PerspectiveNearest warps src into dst under the forward perspective
// transform m using nearest-neighbor sampling. Returns
// geom.ErrSingularMatrix when m cannot be inverted.
func PerspectiveNearest[T core.Element](dst, src core.Image[T], m geom.Perspective, b border.Border[T]) error {
	if err := validate(dst, src, b); err != nil {
		return err
	}
	inv, err := m.Invert()
	if err != nil {
		return err
	}
	warpNearest(dst, src, inv, b)
	return nil
}

// PerspectiveLinear warps src into dst under the forward perspective
// transform m using bilinear sampling. Returns geom.ErrSingularMatrix when
// m cannot be inverted.
func PerspectiveLinear[T core.Element](dst, src core.Image[T], m geom.Perspective, b border.Border[T]) error {
	if err := validate(dst, src, b); err != nil {
		return err
	}
	inv, err := m.Invert()
	if err != nil {
		return err
	}
	warpLinear(dst, src, inv, b)
	return nil
}

func validate[T core.Element](dst, src core.Image[T], b border.Border[T]) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if dst.Channels != src.Channels {
		return fmt.Errorf("%w: src %d, dst %d", core.ErrInvalidChannels, src.Channels, dst.Channels)
	}
	return b.Validate(src.Channels)
}

// resolveIndex maps an integral float coordinate to an in-bounds index
// under the mode's rule. The second result is false when the mode provides
// no index (Constant fill, Transparent skip). Non-finite coordinates
// resolve to an edge for Replicate and Reflect.
func resolveIndex(mode border.Mode, v float64, n int) (int, bool) {
	if v >= 0 && v < float64(n) {
		return int(v), true
	}
	switch mode {
	case border.Replicate:
		if !(v > 0) {
			// Negative, NaN, or -Inf.
			return 0, true
		}
		return n - 1, true
	case border.Reflect:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, true
		}
		// Reduce in float space so the int conversion cannot overflow.
		m := math.Mod(v, 2*float64(n))
		return border.Mirror(int(m), n), true
	default:
		return 0, false
	}
}
