package warp

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/geom"
	"github.com/cwbudde/algo-image/internal/testutil"
)

func benchTransform() geom.Affine {
	return geom.RotateAbout(0.3, geom.Point{X: 320, Y: 240})
}

func BenchmarkAffineNearest(b *testing.B) {
	for _, channels := range []int{1, 4} {
		b.Run(fmt.Sprintf("c%d", channels), func(b *testing.B) {
			src := testutil.RandomImage[uint8](1, 640, 480, channels)
			dst := core.New[uint8](640, 480, channels)
			m := benchTransform()
			bd := border.MakeReplicate[uint8]()

			b.SetBytes(int64(640 * 480 * channels))
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				if err := AffineNearest(dst, src, m, bd); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAffineLinear(b *testing.B) {
	for _, channels := range []int{1, 4} {
		b.Run(fmt.Sprintf("c%d", channels), func(b *testing.B) {
			src := testutil.RandomImage[uint8](1, 640, 480, channels)
			dst := core.New[uint8](640, 480, channels)
			m := benchTransform()
			bd := border.MakeConstant[uint8]()

			b.SetBytes(int64(640 * 480 * channels))
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				if err := AffineLinear(dst, src, m, bd); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPerspectiveLinear(b *testing.B) {
	src := testutil.RandomImage[uint8](1, 640, 480, 3)
	dst := core.New[uint8](640, 480, 3)
	m := geom.NewPerspective([9]float64{
		0.95, 0.05, 4,
		-0.02, 1.05, -2,
		0.00005, -0.00003, 1,
	})
	bd := border.MakeConstant[uint8]()

	b.SetBytes(int64(640 * 480 * 3))
	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := PerspectiveLinear(dst, src, m, bd); err != nil {
			b.Fatal(err)
		}
	}
}
