package core

import "math"

// SaturateCast converts a float64 intermediate to the element type.
// uint8 rounds to nearest (half away from zero) and clamps to [0, 255];
// NaN maps to 0. float32 converts without saturation.
func SaturateCast[T Element](v float64) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		switch {
		case v >= 255:
			return T(255)
		case v > 0:
			return T(math.Round(v))
		default:
			return zero
		}
	case float32:
		return T(v)
	}
	return zero
}

// EnsureLen returns a slice with the requested length, reusing buf capacity
// if possible.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to the zero value.
func Zero[T any](buf []T) {
	var zero T
	for i := range buf {
		buf[i] = zero
	}
}

// ClampInt limits v to the inclusive range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NearlyEqual reports whether a and b are equal within eps, absolutely for
// small magnitudes and relatively otherwise.
func NearlyEqual(a, b, eps float64) bool {
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}
