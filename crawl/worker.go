package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// DefaultFetchTimeout bounds a single fetch when no timeout is configured.
const DefaultFetchTimeout = 10 * time.Second

// ProcessFunc fetches one URL and returns its in-scope links.
type ProcessFunc func(ctx context.Context, url string) linkcrawl.FetchResult

// Worker fetches a single URL, extracts its anchors and keeps those under
// the scope prefix.
type Worker struct {
	Fetcher     linkcrawl.Fetcher
	Extractor   linkcrawl.LinkExtractor
	ScopePrefix string
	Timeout     time.Duration
}

// Process fetches url and returns the filtered, deduplicated links.
// Failures never escape as panics or errors: they come back as a result
// with no links and an EFETCH or EPARSE error, or ECANCELED when ctx was
// canceled during the fetch. Process does not retry.
func (w *Worker) Process(ctx context.Context, url string) linkcrawl.FetchResult {
	result := linkcrawl.FetchResult{
		URL:   url,
		Links: make(linkcrawl.LinkSet),
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := w.Fetcher.Fetch(fetchCtx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Err = linkcrawl.Errorf(linkcrawl.ECANCELED, "%s: %v", url, ctxErr)
			return result
		}
		result.Err = withCode(linkcrawl.EFETCH, url, err)
		return result
	}

	hrefs, err := w.Extractor.ExtractHrefs(body)
	if err != nil {
		result.Err = withCode(linkcrawl.EPARSE, url, err)
		return result
	}

	result.Links = FilterLinks(hrefs, w.ScopePrefix)
	return result
}

// withCode tags err with code unless it already carries that code.
func withCode(code, url string, err error) error {
	if linkcrawl.ErrorCode(err) == code {
		return err
	}
	return linkcrawl.Errorf(code, "%s: %v", url, err)
}
