// Package registry holds the per-row binarization kernels the threshold
// package dispatches between at runtime.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// RowFunc binarizes one row against its per-pixel local statistic:
// dst[i] = set when float64(src[i]) > stat[i]-delta, clear otherwise.
// dst and src may be the same slice.
type RowFunc func(dst, src []uint8, stat []float64, delta float64, set, clear uint8)

// ScalarFunc binarizes one row against a single threshold:
// dst[i] = set when float64(src[i]) > thresh, clear otherwise.
type ScalarFunc func(dst, src []uint8, thresh float64, set, clear uint8)

// OpEntry is one registered binarization kernel implementation.
// Row and Scalar must produce byte-identical output to the generic
// entry; faster variants buy speed, never different pixels.
type OpEntry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Row       RowFunc
	Scalar    ScalarFunc
}

// OpRegistry stores available implementations.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the registry the arch packages fill from their init
// functions; the threshold package consults it once per process.
var Global = &OpRegistry{}

// Register adds an implementation entry.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the best registered kernel the given CPU features can
// run: entries are scanned in descending priority and the first one
// whose SIMD level the features support wins. Returns nil when nothing
// fits, which the caller treats as a missing generic fallback.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

func (r *OpRegistry) ensureSorted() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sorted {
		return
	}
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
	r.sorted = true
}

// ListEntries returns a copy of entries for tests/debugging.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
