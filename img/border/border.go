// Package border defines how kernels resolve pixel lookups that fall
// outside image bounds.
//
// A [Mode] names the policy; [Border] pairs a mode with the fill value used
// by [Constant]. The zero Border is Constant with zero fill, the library
// default.
package border

import (
	"errors"
	"fmt"
)

// Errors returned by border validation.
var (
	ErrUnknownMode     = errors.New("border: unknown mode")
	ErrUnsupportedMode = errors.New("border: mode not supported by this operation")
	ErrBorderValue     = errors.New("border: fill value length must be 0, 1, or the channel count")
)

// Mode selects the out-of-bounds policy.
type Mode int

const (
	// Constant resolves out-of-bounds lookups to a fill value.
	Constant Mode = iota

	// Replicate clamps coordinates to the nearest edge pixel.
	Replicate

	// Reflect mirrors coordinates across the edge, repeating the edge
	// pixel: index -1 resolves to 0, -2 to 1.
	Reflect

	// Transparent leaves destination pixels untouched when their source
	// lookup is out of bounds. Callers pre-initialize the destination if
	// the untouched value matters.
	Transparent
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Constant:
		return "constant"
	case Replicate:
		return "replicate"
	case Reflect:
		return "reflect"
	case Transparent:
		return "transparent"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m names a defined policy.
func (m Mode) Valid() bool {
	return m >= Constant && m <= Transparent
}

// Border is a policy plus the Constant fill value. Value applies to
// Constant only: empty means zero fill, length 1 broadcasts across
// channels, length C fills per channel.
type Border[T any] struct {
	Mode  Mode
	Value []T
}

// MakeConstant returns a Constant border with the given fill.
func MakeConstant[T any](values ...T) Border[T] {
	return Border[T]{Mode: Constant, Value: values}
}

// MakeReplicate returns a Replicate border.
func MakeReplicate[T any]() Border[T] {
	return Border[T]{Mode: Replicate}
}

// MakeReflect returns a Reflect border.
func MakeReflect[T any]() Border[T] {
	return Border[T]{Mode: Reflect}
}

// MakeTransparent returns a Transparent border.
func MakeTransparent[T any]() Border[T] {
	return Border[T]{Mode: Transparent}
}

// Validate checks the mode and the fill value length against the channel
// count.
func (b Border[T]) Validate(channels int) error {
	if !b.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(b.Mode))
	}
	if n := len(b.Value); n != 0 && n != 1 && n != channels {
		return fmt.Errorf("%w: have %d values for %d channels", ErrBorderValue, n, channels)
	}
	return nil
}

// Fill returns the per-channel fill values for a Constant border,
// broadcasting a single value and defaulting to zeros.
func (b Border[T]) Fill(channels int) []T {
	fill := make([]T, channels)
	switch len(b.Value) {
	case 0:
	case 1:
		for i := range fill {
			fill[i] = b.Value[0]
		}
	default:
		copy(fill, b.Value)
	}
	return fill
}

// Clamp resolves i to [0, n-1] by clamping (Replicate semantics).
func Clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Mirror resolves i to [0, n-1] by reflection with edge repeat (Reflect
// semantics), periodic with period 2n.
func Mirror(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = -i - 1
	}
	if i >= n {
		period := 2 * n
		i %= period
		if i >= n {
			i = period - i - 1
		}
	}
	return i
}

// Resolve applies the mode's index rule. The second result is false when
// the lookup cannot be resolved to an in-bounds index (Constant and
// Transparent modes with i outside [0, n-1]).
func Resolve(m Mode, i, n int) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch m {
	case Replicate:
		return Clamp(i, n), true
	case Reflect:
		return Mirror(i, n), true
	default:
		return 0, false
	}
}
