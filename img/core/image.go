// Package core defines the pixel element types and the strided image view
// shared by all kernels in this module.
//
// An [Image] is a non-owning descriptor over a caller-owned slice. Rows are
// Stride elements apart, and Stride may exceed Width*Channels so a view can
// describe a sub-region of a larger buffer. Kernels never retain the slice
// beyond the call.
package core

import (
	"errors"
	"fmt"
)

// Errors returned by image view validation.
var (
	ErrInvalidDimensions = errors.New("core: dimensions must be positive")
	ErrInvalidChannels   = errors.New("core: unsupported channel count")
	ErrInvalidStride     = errors.New("core: stride smaller than row width")
	ErrShortBuffer       = errors.New("core: pixel buffer too short")
	ErrRegionBounds      = errors.New("core: subview region out of bounds")
)

// Element is the closed set of pixel element types the kernels operate on.
type Element interface {
	uint8 | float32
}

// Image is a non-owning view of an interleaved pixel buffer.
// Stride counts elements, not bytes, and satisfies Stride >= Width*Channels.
type Image[T Element] struct {
	Pix      []T
	Width    int
	Height   int
	Stride   int
	Channels int
}

// New allocates a packed image of the given size.
// Channels must be 1, 3, or 4.
func New[T Element](width, height, channels int) Image[T] {
	return Image[T]{
		Pix:      make([]T, width*height*channels),
		Width:    width,
		Height:   height,
		Stride:   width * channels,
		Channels: channels,
	}
}

// FromPix wraps an existing slice in an image view without copying.
func FromPix[T Element](pix []T, width, height, stride, channels int) Image[T] {
	return Image[T]{
		Pix:      pix,
		Width:    width,
		Height:   height,
		Stride:   stride,
		Channels: channels,
	}
}

// MinPixLen returns the minimum backing slice length for the given geometry.
func MinPixLen(width, height, stride, channels int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (height-1)*stride + width*channels
}

// Validate checks the view geometry against the backing slice.
func (im Image[T]) Validate() error {
	if im.Width <= 0 || im.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, im.Width, im.Height)
	}
	if im.Channels != 1 && im.Channels != 3 && im.Channels != 4 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, im.Channels)
	}
	if im.Stride < im.Width*im.Channels {
		return fmt.Errorf("%w: stride %d, row width %d", ErrInvalidStride, im.Stride, im.Width*im.Channels)
	}
	if len(im.Pix) < MinPixLen(im.Width, im.Height, im.Stride, im.Channels) {
		return fmt.Errorf("%w: have %d, need %d", ErrShortBuffer, len(im.Pix), MinPixLen(im.Width, im.Height, im.Stride, im.Channels))
	}
	return nil
}

// Row returns the logical pixels of row y, Width*Channels elements long.
func (im Image[T]) Row(y int) []T {
	off := y * im.Stride
	return im.Pix[off : off+im.Width*im.Channels]
}

// SubView returns a view of the rectangle at (x, y) sharing the backing
// slice. The subview keeps the parent stride.
func (im Image[T]) SubView(x, y, width, height int) (Image[T], error) {
	if width <= 0 || height <= 0 {
		return Image[T]{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if x < 0 || y < 0 || x+width > im.Width || y+height > im.Height {
		return Image[T]{}, fmt.Errorf("%w: (%d,%d) %dx%d in %dx%d", ErrRegionBounds, x, y, width, height, im.Width, im.Height)
	}

	off := y*im.Stride + x*im.Channels
	return Image[T]{
		Pix:      im.Pix[off:],
		Width:    width,
		Height:   height,
		Stride:   im.Stride,
		Channels: im.Channels,
	}, nil
}
