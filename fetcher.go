package linkcrawl

import "context"

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch performs a GET for the URL and returns the response body.
	// Network failures, timeouts and non-2xx responses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
