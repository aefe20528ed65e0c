package warp

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/geom"
	"github.com/cwbudde/algo-image/internal/testutil"
)

type applyFunc func(x, y float64) (float64, float64)

// naiveNearest is a direct per-pixel reference with a generic channel
// loop. The kernels stage offsets per row and unroll per channel count;
// both must land on identical bytes.
func naiveNearest[T core.Element](dst, src core.Image[T], inv applyFunc, b border.Border[T]) {
	fill := b.Fill(src.Channels)
	c := src.Channels
	fw, fh := float64(src.Width), float64(src.Height)
	for y := 0; y < dst.Height; y++ {
		drow := dst.Row(y)
		for x := 0; x < dst.Width; x++ {
			sx, sy := inv(float64(x), float64(y))
			rx := math.Ceil(sx - 0.5)
			ry := math.Ceil(sy - 0.5)
			d := x * c
			if rx >= 0 && rx < fw && ry >= 0 && ry < fh {
				o := int(ry)*src.Stride + int(rx)*c
				copy(drow[d:d+c], src.Pix[o:o+c])
				continue
			}
			switch b.Mode {
			case border.Replicate, border.Reflect:
				ix, _ := resolveIndex(b.Mode, rx, src.Width)
				iy, _ := resolveIndex(b.Mode, ry, src.Height)
				o := iy*src.Stride + ix*c
				copy(drow[d:d+c], src.Pix[o:o+c])
			case border.Constant:
				copy(drow[d:d+c], fill)
			}
		}
	}
}

func naiveLinear[T core.Element](dst, src core.Image[T], inv applyFunc, b border.Border[T]) {
	fill := make([]float64, src.Channels)
	for i, v := range b.Fill(src.Channels) {
		fill[i] = float64(v)
	}
	c := src.Channels
	w, h := src.Width, src.Height
	fw1, fh1 := float64(w-1), float64(h-1)
	stride := src.Stride

	for y := 0; y < dst.Height; y++ {
		drow := dst.Row(y)
		for x := 0; x < dst.Width; x++ {
			sx, sy := inv(float64(x), float64(y))

			var o00, o01, o10, o11 int
			var fx, fy float64
			if sx >= 0 && sx <= fw1 && sy >= 0 && sy <= fh1 {
				x0, y0 := int(sx), int(sy)
				fx = sx - float64(x0)
				fy = sy - float64(y0)
				x1, y1 := x0+1, y0+1
				if fx == 0 {
					x1 = x0
				}
				if fy == 0 {
					y1 = y0
				}
				o00 = y0*stride + x0*c
				o01 = y0*stride + x1*c
				o10 = y1*stride + x0*c
				o11 = y1*stride + x1*c
			} else {
				if b.Mode == border.Transparent {
					continue
				}
				fx0 := math.Floor(sx)
				fy0 := math.Floor(sy)
				fx = sx - fx0
				fy = sy - fy0
				if math.IsNaN(fx) {
					fx = 0
				}
				if math.IsNaN(fy) {
					fy = 0
				}
				switch b.Mode {
				case border.Replicate, border.Reflect:
					x0, _ := resolveIndex(b.Mode, fx0, w)
					x1, _ := resolveIndex(b.Mode, fx0+1, w)
					y0, _ := resolveIndex(b.Mode, fy0, h)
					y1, _ := resolveIndex(b.Mode, fy0+1, h)
					o00 = y0*stride + x0*c
					o01 = y0*stride + x1*c
					o10 = y1*stride + x0*c
					o11 = y1*stride + x1*c
				default:
					o00 = constantOffset(fx0, fy0, w, h, stride, c)
					o01 = constantOffset(fx0+1, fy0, w, h, stride, c)
					o10 = constantOffset(fx0, fy0+1, w, h, stride, c)
					o11 = constantOffset(fx0+1, fy0+1, w, h, stride, c)
				}
			}

			d := x * c
			for ch := 0; ch < c; ch++ {
				f := fill[ch]
				p00 := tap(src.Pix, o00, ch, f)
				p01 := tap(src.Pix, o01, ch, f)
				p10 := tap(src.Pix, o10, ch, f)
				p11 := tap(src.Pix, o11, ch, f)
				top := p00 + fx*(p01-p00)
				bot := p10 + fx*(p11-p10)
				drow[d+ch] = core.SaturateCast[T](top + fy*(bot-top))
			}
		}
	}
}

func TestAffineNearestIdentity(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		src := testutil.RandomImage[uint8](11, 13, 9, channels)
		dst := core.New[uint8](13, 9, channels)
		if err := AffineNearest(dst, src, geom.AffineIdentity, border.MakeConstant[uint8]()); err != nil {
			t.Fatalf("AffineNearest(c=%d) error = %v", channels, err)
		}
		testutil.RequirePixEqual(t, dst, src)
	}
}

func TestAffineLinearIdentity(t *testing.T) {
	// Fractions degenerate to zero on every pixel, so the blend passes
	// source values through untouched for both element types.
	srcU8 := testutil.RandomImage[uint8](3, 12, 8, 3)
	dstU8 := core.New[uint8](12, 8, 3)
	if err := AffineLinear(dstU8, srcU8, geom.AffineIdentity, border.MakeReplicate[uint8]()); err != nil {
		t.Fatalf("AffineLinear(uint8) error = %v", err)
	}
	testutil.RequirePixEqual(t, dstU8, srcU8)

	srcF32 := testutil.RandomImage[float32](4, 12, 8, 1)
	dstF32 := core.New[float32](12, 8, 1)
	if err := AffineLinear(dstF32, srcF32, geom.AffineIdentity, border.MakeReplicate[float32]()); err != nil {
		t.Fatalf("AffineLinear(float32) error = %v", err)
	}
	testutil.RequirePixEqual(t, dstF32, srcF32)
}

func TestPerspectiveNearestIdentity2x2(t *testing.T) {
	src := core.FromPix([]uint8{10, 20, 30, 40}, 2, 2, 2, 1)
	dst := core.New[uint8](2, 2, 1)
	if err := PerspectiveNearest(dst, src, geom.PerspectiveIdentity, border.MakeConstant[uint8]()); err != nil {
		t.Fatalf("PerspectiveNearest() error = %v", err)
	}
	testutil.RequirePixEqual(t, dst, src)
}

func TestAffineAgainstNaive(t *testing.T) {
	transforms := map[string]geom.Affine{
		"mild":   geom.Translate(0.3, -0.7).Mul(geom.Rotate(0.4)).Mul(geom.Scale(1.3, 0.8)),
		"shrink": geom.Scale(0.5, 0.5),
	}
	borders := map[string]border.Border[uint8]{
		"constant":    border.MakeConstant[uint8](7),
		"replicate":   border.MakeReplicate[uint8](),
		"reflect":     border.MakeReflect[uint8](),
		"transparent": border.MakeTransparent[uint8](),
	}

	for tname, m := range transforms {
		for bname, b := range borders {
			for _, channels := range []int{1, 3, 4} {
				t.Run(fmt.Sprintf("%s_%s_c%d", tname, bname, channels), func(t *testing.T) {
					src := testutil.RandomPadded[uint8](17, 15, 11, channels, 5)
					inv := m.Invert()

					for _, linear := range []bool{false, true} {
						got := testutil.RandomPadded[uint8](18, 15, 11, channels, 5)
						testutil.FillSentinel(got, 99)
						want := core.New[uint8](15, 11, channels)
						testutil.FillSentinel(want, 99)

						var err error
						if linear {
							err = AffineLinear(got, src, m, b)
							naiveLinear(want, src, inv.Apply, b)
						} else {
							err = AffineNearest(got, src, m, b)
							naiveNearest(want, src, inv.Apply, b)
						}
						if err != nil {
							t.Fatalf("warp (linear=%v) error = %v", linear, err)
						}
						testutil.RequirePixEqual(t, got, want)
						if !testutil.GapIntact(got) {
							t.Errorf("stride padding of dst was written (linear=%v)", linear)
						}
					}
				})
			}
		}
	}
}

func TestPerspectiveAgainstNaive(t *testing.T) {
	m := geom.NewPerspective([9]float64{
		0.9, 0.1, 2,
		-0.05, 1.1, -1,
		0.0005, -0.0003, 1,
	})
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert() error = %v", err)
	}

	borders := map[string]border.Border[uint8]{
		"constant":    border.MakeConstant[uint8](1, 2, 3),
		"replicate":   border.MakeReplicate[uint8](),
		"transparent": border.MakeTransparent[uint8](),
	}
	for bname, b := range borders {
		t.Run(bname, func(t *testing.T) {
			src := testutil.RandomPadded[uint8](23, 14, 10, 3, 4)

			for _, linear := range []bool{false, true} {
				got := core.New[uint8](14, 10, 3)
				testutil.FillSentinel(got, 99)
				want := core.New[uint8](14, 10, 3)
				testutil.FillSentinel(want, 99)

				if linear {
					if err := PerspectiveLinear(got, src, m, b); err != nil {
						t.Fatalf("PerspectiveLinear() error = %v", err)
					}
					naiveLinear(want, src, inv.Apply, b)
				} else {
					if err := PerspectiveNearest(got, src, m, b); err != nil {
						t.Fatalf("PerspectiveNearest() error = %v", err)
					}
					naiveNearest(want, src, inv.Apply, b)
				}
				testutil.RequirePixEqual(t, got, want)
			}
		})
	}
}

func TestLinearFloat32AgainstNaive(t *testing.T) {
	m := geom.Translate(1.2, -0.4).Mul(geom.Rotate(-0.3))
	src := testutil.RandomPadded[float32](41, 13, 9, 3, 6)
	b := border.MakeConstant[float32](0.5, 1.5, -2)

	got := core.New[float32](13, 9, 3)
	if err := AffineLinear(got, src, m, b); err != nil {
		t.Fatalf("AffineLinear() error = %v", err)
	}
	want := core.New[float32](13, 9, 3)
	naiveLinear(want, src, m.Invert().Apply, b)
	testutil.RequirePixEqual(t, got, want)
}

func TestConstantFillExact(t *testing.T) {
	// Everything maps far outside the source, so the fill value must
	// appear verbatim on every channel.
	m := geom.Translate(1000, 1000)
	src := testutil.RandomImage[uint8](3, 6, 5, 3)
	b := border.MakeConstant[uint8](10, 20, 30)

	for _, linear := range []bool{false, true} {
		dst := core.New[uint8](6, 5, 3)
		var err error
		if linear {
			err = AffineLinear(dst, src, m, b)
		} else {
			err = AffineNearest(dst, src, m, b)
		}
		if err != nil {
			t.Fatalf("warp (linear=%v) error = %v", linear, err)
		}
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			for x := 0; x < dst.Width; x++ {
				if row[x*3] != 10 || row[x*3+1] != 20 || row[x*3+2] != 30 {
					t.Fatalf("pixel (%d,%d) = %v, want fill 10 20 30 (linear=%v)",
						x, y, row[x*3:x*3+3], linear)
				}
			}
		}
	}
}

func TestTransparentLeavesDestination(t *testing.T) {
	m := geom.Translate(1000, 1000)
	src := testutil.RandomImage[uint8](3, 6, 5, 1)

	for _, linear := range []bool{false, true} {
		dst := core.New[uint8](6, 5, 1)
		testutil.FillSentinel(dst, 123)
		var err error
		if linear {
			err = AffineLinear(dst, src, m, border.MakeTransparent[uint8]())
		} else {
			err = AffineNearest(dst, src, m, border.MakeTransparent[uint8]())
		}
		if err != nil {
			t.Fatalf("warp (linear=%v) error = %v", linear, err)
		}
		testutil.RequirePixEqual(t, dst, testutil.Uniform[uint8](6, 5, 1, 123))
	}
}

func TestNearestTieRounding(t *testing.T) {
	// A forward shift by -0.5 maps destination x to source x+0.5; the
	// tie must round toward the lower index.
	src := core.FromPix([]uint8{0, 100, 200}, 3, 1, 3, 1)
	dst := core.New[uint8](3, 1, 1)
	if err := AffineNearest(dst, src, geom.Translate(-0.5, 0), border.MakeReplicate[uint8]()); err != nil {
		t.Fatalf("AffineNearest() error = %v", err)
	}
	want := core.FromPix([]uint8{0, 100, 200}, 3, 1, 3, 1)
	testutil.RequirePixEqual(t, dst, want)
}

func TestLinearHalfPixelShift(t *testing.T) {
	// Forward shift by +0.5 samples halfway between neighbors; the
	// first pixel blends two copies of the replicated edge.
	src := core.FromPix([]uint8{0, 100, 200}, 3, 1, 3, 1)
	dst := core.New[uint8](3, 1, 1)
	if err := AffineLinear(dst, src, geom.Translate(0.5, 0), border.MakeReplicate[uint8]()); err != nil {
		t.Fatalf("AffineLinear() error = %v", err)
	}
	want := core.FromPix([]uint8{0, 50, 150}, 3, 1, 3, 1)
	testutil.RequirePixEqual(t, dst, want)
}

func TestAffineSingularFillsBorder(t *testing.T) {
	// A singular affine is not an error: its inverse maps no pixel to a
	// finite coordinate, so the border policy paints everything.
	var m geom.Affine
	src := testutil.RandomImage[uint8](3, 5, 4, 1)
	dst := core.New[uint8](5, 4, 1)
	if err := AffineNearest(dst, src, m, border.MakeConstant[uint8](7)); err != nil {
		t.Fatalf("AffineNearest() error = %v", err)
	}
	testutil.RequirePixEqual(t, dst, testutil.Uniform[uint8](5, 4, 1, 7))
}

func TestLinearRoundTrip(t *testing.T) {
	// Warp forward and back with independently inverted matrices; away
	// from the borders the smooth image must come back close.
	w, h := 48, 40
	src := core.New[float32](w, h, 1)
	for y := 0; y < h; y++ {
		row := src.Row(y)
		for x := 0; x < w; x++ {
			row[x] = float32(100 + 50*math.Sin(float64(x)*math.Pi/16)*math.Cos(float64(y)*math.Pi/16))
		}
	}

	m := geom.RotateAbout(0.5, geom.Point{X: float64(w) / 2, Y: float64(h) / 2})
	mid := core.New[float32](w, h, 1)
	if err := AffineLinear(mid, src, m, border.MakeReplicate[float32]()); err != nil {
		t.Fatalf("forward warp error = %v", err)
	}
	back := core.New[float32](w, h, 1)
	if err := AffineLinear(back, mid, m.Invert(), border.MakeReplicate[float32]()); err != nil {
		t.Fatalf("inverse warp error = %v", err)
	}

	// The margin must keep clear of pixels whose inverse map passes
	// through regions that sampled replicated border values on the
	// forward warp; a 0.5-rad rotation about the center contaminates
	// up to 8 pixels in from the rim at this image size.
	const margin = 8
	for y := margin; y < h-margin; y++ {
		brow := back.Row(y)
		srow := src.Row(y)
		for x := margin; x < w-margin; x++ {
			if d := math.Abs(float64(brow[x]) - float64(srow[x])); d > 2 {
				t.Fatalf("pixel (%d,%d): round trip drifted by %v", x, y, d)
			}
		}
	}
}

func TestWarpValidation(t *testing.T) {
	src := testutil.RandomImage[uint8](1, 8, 6, 3)

	tests := []struct {
		name string
		call func(dst core.Image[uint8]) error
		want error
	}{
		{
			name: "channel mismatch",
			call: func(dst core.Image[uint8]) error {
				return AffineNearest(dst, testutil.RandomImage[uint8](1, 8, 6, 4), geom.AffineIdentity, border.MakeReplicate[uint8]())
			},
			want: core.ErrInvalidChannels,
		},
		{
			name: "bad fill length",
			call: func(dst core.Image[uint8]) error {
				return AffineNearest(dst, src, geom.AffineIdentity, border.MakeConstant[uint8](1, 2))
			},
			want: border.ErrBorderValue,
		},
		{
			name: "singular perspective",
			call: func(dst core.Image[uint8]) error {
				var m geom.Perspective
				return PerspectiveLinear(dst, src, m, border.MakeReplicate[uint8]())
			},
			want: geom.ErrSingularMatrix,
		},
		{
			name: "invalid source",
			call: func(dst core.Image[uint8]) error {
				return AffineLinear(dst, core.Image[uint8]{}, geom.AffineIdentity, border.MakeReplicate[uint8]())
			},
			want: core.ErrInvalidDimensions,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := testutil.Uniform[uint8](8, 6, 3, 42)
			if err := tt.call(dst); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			// Failed calls must not have touched the destination.
			testutil.RequirePixEqual(t, dst, testutil.Uniform[uint8](8, 6, 3, 42))
		})
	}
}
