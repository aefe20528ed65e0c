package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-image/img/core"
)

// RequirePixEqual fails t unless the logical regions of got and want match
// exactly. Stride padding is ignored.
func RequirePixEqual[T core.Element](t *testing.T, got, want core.Image[T]) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height || got.Channels != want.Channels {
		t.Fatalf("geometry mismatch: got %dx%dx%d, want %dx%dx%d",
			got.Width, got.Height, got.Channels, want.Width, want.Height, want.Channels)
	}
	for y := 0; y < got.Height; y++ {
		g := got.Row(y)
		w := want.Row(y)
		for i := range g {
			if g[i] != w[i] {
				x := i / got.Channels
				ch := i % got.Channels
				t.Fatalf("pixel (%d,%d) ch %d: got %v, want %v", x, y, ch, g[i], w[i])
			}
		}
	}
}

// RequirePixNear fails t unless the logical regions match within eps.
func RequirePixNear[T core.Element](t *testing.T, got, want core.Image[T], eps float64) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height || got.Channels != want.Channels {
		t.Fatalf("geometry mismatch: got %dx%dx%d, want %dx%dx%d",
			got.Width, got.Height, got.Channels, want.Width, want.Height, want.Channels)
	}
	for y := 0; y < got.Height; y++ {
		g := got.Row(y)
		w := want.Row(y)
		for i := range g {
			if d := math.Abs(float64(g[i]) - float64(w[i])); d > eps {
				x := i / got.Channels
				ch := i % got.Channels
				t.Fatalf("pixel (%d,%d) ch %d: got %v, want %v (diff %v > eps %v)",
					x, y, ch, g[i], w[i], d, eps)
			}
		}
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
