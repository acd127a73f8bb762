package crawl_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/mock"
)

// graph maps page URLs to the anchor targets found on them.
// Fetching a URL missing from the graph fails like a 404.
type graph map[string][]linkcrawl.Href

func (g graph) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if _, ok := g[url]; !ok {
				return "", fmt.Errorf("HTTP 404 for %s", url)
			}
			// The body is the URL itself; the extractor looks it up.
			return url, nil
		},
		CloseFn: func() error { return nil },
	}
}

func (g graph) extractor() *mock.LinkExtractor {
	return &mock.LinkExtractor{
		ExtractHrefsFn: func(content string) ([]linkcrawl.Href, error) {
			return g[content], nil
		},
	}
}

// hrefs builds present anchor targets.
func hrefs(values ...string) []linkcrawl.Href {
	out := make([]linkcrawl.Href, 0, len(values))
	for _, v := range values {
		out = append(out, linkcrawl.NewHref(v))
	}
	return out
}

// fetchLog records every URL passed to a fetcher.
type fetchLog struct {
	mu   sync.Mutex
	urls []string
}

func (l *fetchLog) wrap(f *mock.Fetcher) *mock.Fetcher {
	inner := f.FetchFn
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			l.mu.Lock()
			l.urls = append(l.urls, url)
			l.mu.Unlock()
			return inner(ctx, url)
		},
		CloseFn: f.CloseFn,
	}
}

func (l *fetchLog) fetched() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.urls...)
}
