package crawl

import "github.com/fwojciec/linkcrawl"

// Compile-time interface verification.
var (
	_ linkcrawl.Frontier   = (*Frontier)(nil)
	_ linkcrawl.VisitedSet = (*VisitedSet)(nil)
)

// Frontier is an in-memory URL frontier with exact deduplication.
// Pop returns the most recently pushed URL, so traversal is depth-first.
// It is not safe for concurrent use; the crawl loop owns it.
type Frontier struct {
	stack []string
	index map[string]struct{}
}

// NewFrontier creates a Frontier holding the given URLs.
func NewFrontier(urls ...string) *Frontier {
	f := &Frontier{index: make(map[string]struct{})}
	for _, u := range urls {
		f.Push(u)
	}
	return f
}

// Push adds a URL to the frontier.
// Returns false if the URL is already queued.
func (f *Frontier) Push(url string) bool {
	if _, ok := f.index[url]; ok {
		return false
	}
	f.index[url] = struct{}{}
	f.stack = append(f.stack, url)
	return true
}

// Pop removes and returns the most recently pushed URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	n := len(f.stack)
	if n == 0 {
		return "", false
	}
	url := f.stack[n-1]
	f.stack[n-1] = ""
	f.stack = f.stack[:n-1]
	delete(f.index, url)
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	return len(f.stack)
}

// Contains reports whether the URL is queued.
func (f *Frontier) Contains(url string) bool {
	_, ok := f.index[url]
	return ok
}

// VisitedSet is an exact, unbounded set of visited URLs.
// It is not safe for concurrent use; the crawl loop owns it.
type VisitedSet struct {
	urls linkcrawl.LinkSet
}

// NewVisitedSet creates an empty VisitedSet.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(linkcrawl.LinkSet)}
}

// Add marks a URL visited.
// Returns false if it was already marked.
func (v *VisitedSet) Add(url string) bool {
	return v.urls.Add(url)
}

// Contains reports whether the URL was marked visited.
func (v *VisitedSet) Contains(url string) bool {
	return v.urls.Has(url)
}

// Len returns the number of visited URLs.
func (v *VisitedSet) Len() int {
	return v.urls.Len()
}

// URLs returns the visited URLs in lexical order.
func (v *VisitedSet) URLs() []string {
	return v.urls.Sorted()
}
