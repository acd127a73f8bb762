package linkcrawl

// Frontier holds URLs that are known but not yet fetched.
type Frontier interface {
	// Push adds a URL.
	// Returns false if the URL is already queued.
	Push(url string) bool

	// Pop removes and returns one URL.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of queued URLs.
	Len() int

	// Contains reports whether the URL is queued.
	Contains(url string) bool
}

// VisitedSet holds URLs already dispatched for fetching.
// It only grows; a URL in the set never re-enters the frontier.
type VisitedSet interface {
	// Add marks a URL visited.
	// Returns false if it was already marked.
	Add(url string) bool

	// Contains reports whether the URL was marked visited.
	// Approximate implementations may report false positives,
	// never false negatives.
	Contains(url string) bool

	// Len returns the number of URLs marked visited.
	Len() int
}
