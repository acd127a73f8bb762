package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/linkcrawl"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker limit used when none is configured.
const DefaultConcurrency = 50

// Batch is the merged outcome of one dispatch.
type Batch struct {
	// Links is the union of every successful result's links.
	Links linkcrawl.LinkSet

	// Results holds one entry per dispatched URL, in input order.
	Results []linkcrawl.FetchResult
}

// Failed returns the results that did not succeed.
func (b Batch) Failed() []linkcrawl.FetchResult {
	var failed []linkcrawl.FetchResult
	for _, r := range b.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Dispatcher runs a ProcessFunc over a batch of URLs with bounded
// concurrency. It shares no mutable state with its caller: every call
// returns a fresh Batch.
type Dispatcher struct {
	Process     ProcessFunc
	Concurrency int

	// RetryDelays applies ProcessWithRetry to each URL. Nil means no retry.
	RetryDelays []time.Duration
}

// Dispatch processes every URL with at most Concurrency calls in flight,
// waits for all of them and returns the union of their links.
// A failing URL never aborts the batch. Once ctx is canceled, URLs not yet
// started come back with an ECANCELED error without being fetched.
func (d *Dispatcher) Dispatch(ctx context.Context, urls []string) Batch {
	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Each goroutine owns one slot, so no locking is needed.
	results := make([]linkcrawl.FetchResult, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			results[i] = linkcrawl.FetchResult{
				URL:   url,
				Links: make(linkcrawl.LinkSet),
				Err:   linkcrawl.Errorf(linkcrawl.ECANCELED, "%s: %v", url, err),
			}
			continue
		}
		g.Go(func() error {
			results[i] = ProcessWithRetry(ctx, url, d.Process, d.RetryDelays)
			// Never fail the group: per-URL errors live in the result.
			return nil
		})
	}
	_ = g.Wait()

	batch := Batch{
		Links:   make(linkcrawl.LinkSet),
		Results: results,
	}
	for _, r := range results {
		batch.Links.Union(r.Links)
	}
	return batch
}
