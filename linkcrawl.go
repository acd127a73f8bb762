// Package linkcrawl provides a concurrent, prefix-scoped web crawler.
// It walks a link graph from a seed URL, fetching pages in parallel,
// extracting anchors, keeping only links under a scope prefix and
// deduplicating against pages already visited, until nothing is left to
// visit.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, bloom/).
package linkcrawl
