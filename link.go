package linkcrawl

import "sort"

// LinkSet is an unordered set of URLs compared by exact string equality.
type LinkSet map[string]struct{}

// NewLinkSet returns a set holding the given URLs.
func NewLinkSet(urls ...string) LinkSet {
	s := make(LinkSet, len(urls))
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Add inserts url and reports whether it was not already present.
func (s LinkSet) Add(url string) bool {
	if _, ok := s[url]; ok {
		return false
	}
	s[url] = struct{}{}
	return true
}

// Has reports whether url is in the set.
func (s LinkSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s LinkSet) Len() int { return len(s) }

// Union adds every URL of other to s.
func (s LinkSet) Union(other LinkSet) {
	for u := range other {
		s[u] = struct{}{}
	}
}

// Sorted returns the URLs in lexical order.
// Callers that need a stable order (batches, output) use this;
// the set itself has none.
func (s LinkSet) Sorted() []string {
	urls := make([]string, 0, len(s))
	for u := range s {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// FetchResult is the outcome of fetching one URL and extracting its links.
// A failed result has an empty link set and an Err whose code is EFETCH or
// EPARSE, so callers can tell "no links found" from "fetch failed".
// ECANCELED marks a URL whose fetch was abandoned because the crawl was
// canceled; it says nothing about the URL itself.
type FetchResult struct {
	URL   string
	Links LinkSet
	Err   error
}

// OK reports whether the fetch and extraction succeeded.
func (r FetchResult) OK() bool { return r.Err == nil }

// Failure returns the persisted form of a failed result.
func (r FetchResult) Failure() Failure {
	return Failure{
		URL:    r.URL,
		Code:   ErrorCode(r.Err),
		Reason: ErrorMessage(r.Err),
	}
}

// Failure records a URL that could not be fetched or parsed.
type Failure struct {
	URL    string
	Code   string
	Reason string
}
