package threshold

import "github.com/cwbudde/algo-image/img/core"

// Otsu returns the global threshold separating a single-channel uint8
// image into two classes with maximal between-class variance. The
// returned value feeds Binarize's strict greater-than compare, so
// pixels equal to the threshold fall into the background class.
func Otsu(src core.Image[uint8]) (float64, error) {
	if err := validateGray(src); err != nil {
		return 0, err
	}

	var hist [256]int
	for y := 0; y < src.Height; y++ {
		for _, v := range src.Row(y) {
			hist[v]++
		}
	}
	return otsuFromHist(&hist, src.Width*src.Height), nil
}

// OtsuBinarize picks the Otsu threshold and binarizes src into dst with
// it, returning the threshold used. dst may alias src.
func OtsuBinarize(dst, src core.Image[uint8], maxValue float64, typ Type) (float64, error) {
	thresh, err := Otsu(src)
	if err != nil {
		return 0, err
	}
	if err := Binarize(dst, src, thresh, maxValue, typ); err != nil {
		return 0, err
	}
	return thresh, nil
}

func otsuFromHist(hist *[256]int, total int) float64 {
	sum := 0.0
	for i, h := range hist {
		sum += float64(i) * float64(h)
	}

	var sumB, wB float64
	var maxVar, thresh float64
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		v := wB * wF * (mB - mF) * (mB - mF)
		if v > maxVar {
			maxVar = v
			thresh = float64(t)
		}
	}
	return thresh
}
