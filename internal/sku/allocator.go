// =============================================================================
// Marketplace Export Converter - SKU Identity
// =============================================================================
//
// Stable per-row identifiers:
//   - Allocator hands out a unique stock code per row ("X", "X-1", "X-2", ...)
//   - DeriveGroup turns a model code into its variant group id
//
// An Allocator is scoped to one conversion run. It is passed explicitly to the
// row mapper and discarded when the run ends.
//
// =============================================================================

package sku

import (
	"strconv"
	"strings"
)

// Allocator tracks how often each base SKU has been seen in the current run.
// It is not safe for concurrent use; rows are processed in order.
type Allocator struct {
	counts map[string]int
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{counts: make(map[string]int)}
}

// Allocate returns the unique SKU for the next row carrying base.
//
// The first occurrence keeps the base unchanged; the k-th repeat gets "-k".
// Empty bases (after trimming) return "" and are not tracked.
func (a *Allocator) Allocate(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}

	seen := a.counts[base]
	a.counts[base] = seen + 1
	if seen == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(seen)
}

// count returns how many times base has been allocated so far.
func (a *Allocator) count(base string) int {
	return a.counts[strings.TrimSpace(base)]
}
