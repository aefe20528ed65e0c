package filter

import (
	"testing"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/internal/testutil"
)

func BenchmarkBox(b *testing.B) {
	src := testutil.RandomImage[uint8](1, 640, 480, 1)
	dst := core.New[uint8](640, 480, 1)
	b.SetBytes(640 * 480)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := Box(dst, src, 5, true, border.Replicate); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGaussian(b *testing.B) {
	src := testutil.RandomImage[uint8](1, 640, 480, 1)
	dst := core.New[uint8](640, 480, 1)
	b.SetBytes(640 * 480)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := Gaussian(dst, src, 5); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGaussianFFT(b *testing.B) {
	src := testutil.RandomImage[uint8](1, 640, 480, 1)
	dst := core.New[uint8](640, 480, 1)
	b.SetBytes(640 * 480)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := Gaussian(dst, src, 131); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMeanMap(b *testing.B) {
	src := testutil.RandomImage[uint8](1, 640, 480, 1)
	dst := make([]float64, 640*480)
	b.SetBytes(640 * 480)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := MeanMap(dst, src, 15); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIntegral(b *testing.B) {
	src := testutil.RandomImage[uint8](1, 640, 480, 1)
	sum := make([]int64, 641*481)
	b.SetBytes(640 * 480)
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := Integral(sum, src); err != nil {
			b.Fatal(err)
		}
	}
}
