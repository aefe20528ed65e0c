// Command binarize converts an image to black and white using adaptive
// or Otsu thresholding.
//
// Usage:
//
//	binarize [flags] input output.png
//
// The input may be PNG or JPEG; the output is always grayscale PNG.
//
// Examples:
//
//	binarize page.png page-bw.png
//	binarize -method gaussian -ksize 31 -delta 10 scan.jpg out.png
//	binarize -otsu -invert photo.png mask.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-image/img/border"
	"github.com/cwbudde/algo-image/img/core"
	"github.com/cwbudde/algo-image/img/threshold"
)

func main() {
	method := flag.String("method", "mean", "adaptive statistic: mean or gaussian")
	ksize := flag.Int("ksize", 15, "adaptive window size, odd and positive")
	delta := flag.Float64("delta", 5, "offset subtracted from the local statistic")
	maxValue := flag.Float64("max", 255, "value written for pixels above the threshold")
	invert := flag.Bool("invert", false, "write max below the threshold instead of above")
	otsu := flag.Bool("otsu", false, "use a global Otsu threshold instead of adaptive")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: binarize [flags] input output.png\n\n")
		fmt.Fprintf(os.Stderr, "Converts an image to black and white using adaptive or Otsu thresholding.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  binarize page.png page-bw.png\n")
		fmt.Fprintf(os.Stderr, "  binarize -method gaussian -ksize 31 -delta 10 scan.jpg out.png\n")
		fmt.Fprintf(os.Stderr, "  binarize -otsu -invert photo.png mask.png\n")
	}
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	typ := threshold.Binary
	if *invert {
		typ = threshold.BinaryInv
	}

	gray, err := loadGray(inPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", inPath).Msg("failed to load image")
	}
	log.Debug().
		Str("path", inPath).
		Int("width", gray.Width).
		Int("height", gray.Height).
		Msg("image decoded")

	dst := core.New[uint8](gray.Width, gray.Height, 1)
	start := time.Now()

	if *otsu {
		thresh, err := threshold.OtsuBinarize(dst, gray, *maxValue, typ)
		if err != nil {
			log.Fatal().Err(err).Msg("otsu thresholding failed")
		}
		log.Info().
			Float64("threshold", thresh).
			Dur("elapsed", time.Since(start)).
			Msg("otsu threshold applied")
	} else {
		m, err := parseMethod(*method)
		if err != nil {
			log.Fatal().Err(err).Msg("bad -method")
		}
		err = threshold.Adaptive(dst, gray, *maxValue, m, typ, *ksize, *delta, border.Replicate)
		if err != nil {
			log.Fatal().Err(err).Msg("adaptive thresholding failed")
		}
		log.Info().
			Str("method", m.String()).
			Int("ksize", *ksize).
			Float64("delta", *delta).
			Dur("elapsed", time.Since(start)).
			Msg("adaptive threshold applied")
	}

	if err := savePNG(outPath, dst); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("failed to write output")
	}
	log.Info().Str("path", outPath).Msg("written")
}

func parseMethod(s string) (threshold.Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean":
		return threshold.MethodMean, nil
	case "gaussian":
		return threshold.MethodGaussian, nil
	}
	return 0, fmt.Errorf("unknown method %q (want mean or gaussian)", s)
}

// loadGray decodes an image file and converts it to a single-channel view.
func loadGray(path string) (core.Image[uint8], error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Image[uint8]{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return core.Image[uint8]{}, fmt.Errorf("decode %s: %w", path, err)
	}

	b := src.Bounds()
	dst := core.New[uint8](b.Dx(), b.Dy(), 1)

	if g, ok := src.(*image.Gray); ok {
		for y := 0; y < dst.Height; y++ {
			copy(dst.Row(y), g.Pix[y*g.Stride:y*g.Stride+dst.Width])
		}
		return dst, nil
	}
	for y := 0; y < dst.Height; y++ {
		row := dst.Row(y)
		for x := 0; x < dst.Width; x++ {
			c := color.GrayModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			row[x] = c.Y
		}
	}
	return dst, nil
}

func savePNG(path string, im core.Image[uint8]) error {
	out := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		copy(out.Pix[y*out.Stride:], im.Row(y))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
