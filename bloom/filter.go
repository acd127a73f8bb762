// Package bloom provides approximate URL deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/linkcrawl"
)

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// TestAndAdd adds a URL and reports whether it might have been present.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// SizeBits returns the size of the filter's bit array.
func (f *Filter) SizeBits() uint {
	return f.f.Cap()
}

var _ linkcrawl.VisitedSet = (*VisitedSet)(nil)

// VisitedSet is a fixed-memory linkcrawl.VisitedSet.
// A false positive makes the crawl skip a URL it never fetched; it can never
// make the crawl fetch a URL twice.
type VisitedSet struct {
	filter *Filter
	count  int
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs
// with the given false positive rate.
func NewVisitedSet(n uint, fpRate float64) *VisitedSet {
	return &VisitedSet{filter: NewFilter(n, fpRate)}
}

// Add marks a URL visited.
// Returns false if the URL might already have been marked.
func (v *VisitedSet) Add(url string) bool {
	if v.filter.TestAndAdd(url) {
		return false
	}
	v.count++
	return true
}

// Contains reports whether the URL might have been marked visited.
func (v *VisitedSet) Contains(url string) bool {
	return v.filter.Test(url)
}

// Len returns the number of Add calls that reported a new URL.
// False positives make it undercount.
func (v *VisitedSet) Len() int {
	return v.count
}

// SizeBits returns the fixed size of the underlying filter.
func (v *VisitedSet) SizeBits() uint {
	return v.filter.SizeBits()
}

// EstimatedCount estimates how many distinct URLs were added.
func (v *VisitedSet) EstimatedCount() uint {
	return v.filter.EstimatedCount()
}
