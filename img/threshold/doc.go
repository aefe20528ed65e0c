// Package threshold binarizes single-channel uint8 images.
//
// [Adaptive] compares each pixel against a statistic of its own
// neighborhood (mean or Gaussian-weighted mean) shifted by a constant,
// which separates foreground from background under uneven lighting.
// [Binarize] applies one global threshold, and [Otsu] picks that
// threshold from the histogram.
//
// The innermost per-row compare loops are dispatched once per process
// through a kernel registry keyed on detected CPU features, with a
// portable fallback that every specialized kernel must match exactly.
package threshold
