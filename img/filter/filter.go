// Package filter provides separable spatial filtering over strided
// pixel buffers: box and Gaussian smoothing for uint8 and float32
// images, packed local-statistic maps used by adaptive thresholding,
// and integral images.
//
// # Pipeline
//
// Every filter runs the same two-pass engine: source rows are widened
// to float64 and border-padded once, filtered horizontally, and the
// ring of horizontal results is combined vertically into each output
// row. Long Gaussian kernels switch the horizontal pass to
// frequency-domain convolution.
//
// # Borders
//
// Filters support Replicate (the default), Reflect, and Constant
// borders; a Constant border reads zero outside the image. The
// Transparent mode of the warp package has no meaning for a window sum
// and is rejected.
package filter

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
)

var (
	// ErrKernelSize indicates a window size that is not an odd positive
	// integer.
	ErrKernelSize = errors.New("filter: kernel size must be odd and positive")

	// ErrDimensionMismatch indicates that dst and src disagree in size.
	ErrDimensionMismatch = errors.New("filter: dst and src dimensions differ")

	// ErrInvalidSigma indicates a non-positive explicit sigma.
	ErrInvalidSigma = errors.New("filter: sigma must be positive")
)

type config struct {
	mode  border.Mode
	sigma float64
}

// Option configures a Gaussian filter call.
type Option func(*config) error

// WithBorder selects how samples beyond the image edge are read.
// Replicate is the default.
func WithBorder(mode border.Mode) Option {
	return func(cfg *config) error {
		if err := checkFilterBorder(mode); err != nil {
			return err
		}
		cfg.mode = mode
		return nil
	}
}

// WithSigma overrides the standard deviation derived from the window
// size.
func WithSigma(sigma float64) Option {
	return func(cfg *config) error {
		if sigma <= 0 {
			return fmt.Errorf("%w: %g", ErrInvalidSigma, sigma)
		}
		cfg.sigma = sigma
		return nil
	}
}

// Box smooths src into dst with a ksize x ksize window. With normalize
// set the window sum is divided by the window area; without it dst
// receives raw sums, saturated to the element range for uint8 images.
// dst and src must have identical dimensions and must not alias.
func Box[T core.Element](dst, src core.Image[T], ksize int, normalize bool, mode border.Mode) error {
	if err := validatePair(dst, src, ksize); err != nil {
		return err
	}
	if err := checkFilterBorder(mode); err != nil {
		return err
	}
	divisor := 1.0
	if normalize {
		divisor = float64(ksize * ksize)
	}
	return runSeparable(src, ksize, nil, divisor, mode, storeRows(dst))
}

// Gaussian smooths src into dst with a ksize x ksize Gaussian window.
// The deviation defaults to the size-derived value of GaussianKernel
// and can be overridden with WithSigma; the border defaults to
// Replicate. dst and src must have identical dimensions and must not
// alias.
func Gaussian[T core.Element](dst, src core.Image[T], ksize int, opts ...Option) error {
	cfg := config{mode: border.Replicate}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	if err := validatePair(dst, src, ksize); err != nil {
		return err
	}
	taps, err := GaussianKernel(ksize, cfg.sigma)
	if err != nil {
		return err
	}
	return runSeparable(src, ksize, taps, 1, cfg.mode, storeRows(dst))
}

// storeRows converts finished float64 rows back to the element type.
func storeRows[T core.Element](dst core.Image[T]) rowSink {
	return func(y int, acc []float64) {
		drow := dst.Row(y)
		for i, v := range acc {
			drow[i] = core.SaturateCast[T](v)
		}
	}
}

func validatePair[T core.Element](dst, src core.Image[T], ksize int) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if dst.Width != src.Width || dst.Height != src.Height || dst.Channels != src.Channels {
		return fmt.Errorf("%w: dst %dx%dx%d, src %dx%dx%d", ErrDimensionMismatch,
			dst.Width, dst.Height, dst.Channels, src.Width, src.Height, src.Channels)
	}
	if ksize <= 0 || ksize%2 == 0 {
		return fmt.Errorf("%w: %d", ErrKernelSize, ksize)
	}
	return nil
}

func checkFilterBorder(mode border.Mode) error {
	switch mode {
	case border.Constant, border.Replicate, border.Reflect:
		return nil
	default:
		return fmt.Errorf("%w: %v", border.ErrUnsupportedMode, mode)
	}
}
