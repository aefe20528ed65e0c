// Package testutil provides deterministic image generation and comparison
// helpers shared by the kernel tests.
package testutil

import (
	"math/rand/v2"

	"github.com/cwbudde/algo-image/img/core"
)

// RandomImage generates a packed image with seeded pseudo-random pixels:
// uint8 over the full [0, 255] range, float32 over [0, 255).
func RandomImage[T core.Element](seed uint64, width, height, channels int) core.Image[T] {
	im := core.New[T](width, height, channels)
	fillRandom(im.Pix, seed)
	return im
}

// RandomPadded generates a random image whose stride exceeds the row width
// by pad elements, leaving the gap filled with a marker value so tests can
// detect writes outside the logical region.
func RandomPadded[T core.Element](seed uint64, width, height, channels, pad int) core.Image[T] {
	stride := width*channels + pad
	pix := make([]T, core.MinPixLen(width, height, stride, channels)+pad)
	im := core.FromPix(pix, width, height, stride, channels)

	fillRandom(pix, seed)
	for y := 0; y < height; y++ {
		gap := pix[y*stride+width*channels : y*stride+stride]
		for i := range gap {
			gap[i] = gapMarker[T]()
		}
	}
	return im
}

// Uniform generates a packed image with every element set to v.
func Uniform[T core.Element](width, height, channels int, v T) core.Image[T] {
	im := core.New[T](width, height, channels)
	for i := range im.Pix {
		im.Pix[i] = v
	}
	return im
}

// Ramp generates a packed single-channel image with Pix[y*w+x] = x + y
// wrapped into the element range, handy for eyeballing failures.
func Ramp[T core.Element](width, height int) core.Image[T] {
	im := core.New[T](width, height, 1)
	for y := 0; y < height; y++ {
		row := im.Row(y)
		for x := range row {
			row[x] = T(uint8(x + y))
		}
	}
	return im
}

// FillSentinel sets every element of the logical region to v.
func FillSentinel[T core.Element](im core.Image[T], v T) {
	for y := 0; y < im.Height; y++ {
		row := im.Row(y)
		for i := range row {
			row[i] = v
		}
	}
}

func fillRandom[T core.Element](pix []T, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var zero T
	switch any(zero).(type) {
	case uint8:
		for i := range pix {
			pix[i] = T(rng.UintN(256))
		}
	case float32:
		for i := range pix {
			pix[i] = T(rng.Float64() * 255)
		}
	}
}

func gapMarker[T core.Element]() T {
	var zero T
	if _, ok := any(zero).(uint8); ok {
		return T(uint8(0xAB))
	}
	marker := float32(-12345)
	return T(marker)
}

// GapIntact reports whether the stride padding of an image built by
// RandomPadded still holds the marker value.
func GapIntact[T core.Element](im core.Image[T]) bool {
	for y := 0; y < im.Height; y++ {
		gap := im.Pix[y*im.Stride+im.Width*im.Channels : y*im.Stride+im.Stride]
		for _, v := range gap {
			if v != gapMarker[T]() {
				return false
			}
		}
	}
	return true
}
