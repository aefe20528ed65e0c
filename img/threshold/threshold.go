package threshold

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/filter"
	archregistry "github.com/cwbudde/algo-image/img/threshold/internal/arch/registry"
)

var (
	// ErrUnknownMethod indicates an adaptive method outside the enum.
	ErrUnknownMethod = errors.New("threshold: unknown adaptive method")

	// ErrUnknownType indicates a threshold type outside the enum.
	ErrUnknownType = errors.New("threshold: unknown threshold type")

	// ErrDimensionMismatch indicates that dst and src disagree in size.
	ErrDimensionMismatch = errors.New("threshold: dst and src dimensions differ")
)

// Method selects the local statistic of Adaptive.
type Method int

const (
	// MethodMean uses the plain mean of the neighborhood.
	MethodMean Method = iota

	// MethodGaussian uses a Gaussian-weighted mean, with the deviation
	// derived from the window size.
	MethodGaussian
)

func (m Method) String() string {
	switch m {
	case MethodMean:
		return "mean"
	case MethodGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Type selects the polarity of the binarization.
type Type int

const (
	// Binary writes maxValue where the pixel exceeds the threshold and
	// zero elsewhere.
	Binary Type = iota

	// BinaryInv writes zero where the pixel exceeds the threshold and
	// maxValue elsewhere.
	BinaryInv
)

func (t Type) String() string {
	switch t {
	case Binary:
		return "binary"
	case BinaryInv:
		return "binary-inv"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

var (
	rowImpl        archregistry.RowFunc
	scalarImpl     archregistry.ScalarFunc
	kernelInitOnce sync.Once
)

func initKernels() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("threshold: no kernel registered (missing generic fallback?)")
	}
	if entry.Row == nil || entry.Scalar == nil {
		panic("threshold: selected kernel incomplete")
	}
	rowImpl = entry.Row
	scalarImpl = entry.Scalar
}

// Adaptive binarizes src into dst against per-pixel local statistics.
// For each pixel the method statistic over a ksize x ksize neighborhood
// is computed with replicated borders, lowered by delta, and compared:
// with Binary the pixel becomes maxValue where it exceeds the adjusted
// statistic and 0 elsewhere, with BinaryInv the polarity flips.
//
// maxValue is saturated to [0, 255] before use. ksize must be odd and
// positive or the call fails with [filter.ErrKernelSize]; mode must be
// [border.Replicate]. dst may alias src for in-place binarization.
func Adaptive(dst, src core.Image[uint8], maxValue float64, method Method, typ Type, ksize int, delta float64, mode border.Mode) error {
	if err := validatePair(dst, src); err != nil {
		return err
	}
	if method != MethodMean && method != MethodGaussian {
		return fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
	set, clear, err := polarity(typ, maxValue)
	if err != nil {
		return err
	}
	if mode != border.Replicate {
		return fmt.Errorf("%w: adaptive statistics require replicate, got %v", border.ErrUnsupportedMode, mode)
	}

	stat := make([]float64, src.Width*src.Height)
	switch method {
	case MethodMean:
		err = filter.MeanMap(stat, src, ksize)
	case MethodGaussian:
		err = filter.GaussianMap(stat, src, ksize)
	}
	if err != nil {
		return err
	}

	kernelInitOnce.Do(initKernels)
	w := src.Width
	for y := 0; y < src.Height; y++ {
		rowImpl(dst.Row(y), src.Row(y), stat[y*w:(y+1)*w], delta, set, clear)
	}
	return nil
}

// Binarize applies one global threshold to every pixel: with Binary the
// pixel becomes maxValue where it exceeds thresh and 0 elsewhere, with
// BinaryInv the polarity flips. maxValue is saturated to [0, 255]. dst
// may alias src.
func Binarize(dst, src core.Image[uint8], thresh, maxValue float64, typ Type) error {
	if err := validatePair(dst, src); err != nil {
		return err
	}
	set, clear, err := polarity(typ, maxValue)
	if err != nil {
		return err
	}

	kernelInitOnce.Do(initKernels)
	for y := 0; y < src.Height; y++ {
		scalarImpl(dst.Row(y), src.Row(y), thresh, set, clear)
	}
	return nil
}

func polarity(typ Type, maxValue float64) (set, clear uint8, err error) {
	mv := core.SaturateCast[uint8](maxValue)
	switch typ {
	case Binary:
		return mv, 0, nil
	case BinaryInv:
		return 0, mv, nil
	default:
		return 0, 0, fmt.Errorf("%w: %v", ErrUnknownType, typ)
	}
}

func validatePair(dst, src core.Image[uint8]) error {
	if err := validateGray(src); err != nil {
		return err
	}
	if err := dst.Validate(); err != nil {
		return err
	}
	if dst.Width != src.Width || dst.Height != src.Height || dst.Channels != src.Channels {
		return fmt.Errorf("%w: dst %dx%dx%d, src %dx%dx%d", ErrDimensionMismatch,
			dst.Width, dst.Height, dst.Channels, src.Width, src.Height, src.Channels)
	}
	return nil
}

func validateGray(src core.Image[uint8]) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if src.Channels != 1 {
		return fmt.Errorf("%w: thresholding needs a single channel, got %d", core.ErrInvalidChannels, src.Channels)
	}
	return nil
}
