// Package crawl implements frontier-driven link crawling: filtering,
// fetch-and-extract workers, a bounded concurrent dispatcher and the crawl
// loop that owns the frontier and visited set.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// Crawler walks the link graph reachable from SeedURL within ScopePrefix.
//
// Each iteration pops one URL from the frontier, marks it visited, fetches
// it directly, then dispatches its in-scope links to the worker pool to
// expand one level further. Links from both levels that are neither visited
// nor queued are pushed to the frontier. The crawl ends when the frontier
// is empty, when MaxVisited is reached, or when the context is canceled.
type Crawler struct {
	SeedURL     string
	ScopePrefix string

	Fetcher   linkcrawl.Fetcher
	Extractor linkcrawl.LinkExtractor

	// Concurrency bounds batch fetches in flight. Defaults to 50.
	Concurrency int

	// FetchTimeout bounds every individual fetch. Defaults to 10s.
	FetchTimeout time.Duration

	// RetryDelays enables retries of failed fetches. Nil disables them.
	RetryDelays []time.Duration

	// MaxVisited stops the crawl after that many URLs were visited.
	// Zero leaves the crawl unbounded.
	MaxVisited int

	// Frontier and Visited override the in-memory defaults.
	// Both must be empty when Run is called.
	Frontier linkcrawl.Frontier
	Visited  linkcrawl.VisitedSet

	Logger   *slog.Logger
	Progress linkcrawl.ProgressFunc
}

// NewCrawler returns a Crawler for the seed URL and scope prefix with
// default concurrency and fetch timeout. Fetcher and Extractor must be set
// before calling Run.
func NewCrawler(seedURL, scopePrefix string) *Crawler {
	return &Crawler{
		SeedURL:      seedURL,
		ScopePrefix:  scopePrefix,
		Concurrency:  DefaultConcurrency,
		FetchTimeout: DefaultFetchTimeout,
	}
}

// Run crawls until the frontier is empty and returns the record of the
// crawl. On cancellation it returns the partial run together with the
// context's error.
func (c *Crawler) Run(ctx context.Context) (*linkcrawl.Run, error) {
	run := &linkcrawl.Run{
		SeedURL:     c.SeedURL,
		ScopePrefix: c.ScopePrefix,
		Status:      linkcrawl.RunCompleted,
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	if c.Fetcher == nil || c.Extractor == nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "crawler requires a fetcher and a link extractor")
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	frontier := c.Frontier
	if frontier == nil {
		frontier = NewFrontier()
	}
	visited := c.Visited
	if visited == nil {
		visited = NewVisitedSet()
	}

	worker := &Worker{
		Fetcher:     c.Fetcher,
		Extractor:   c.Extractor,
		ScopePrefix: c.ScopePrefix,
		Timeout:     c.FetchTimeout,
	}
	dispatcher := &Dispatcher{
		Process:     worker.Process,
		Concurrency: c.Concurrency,
		RetryDelays: c.RetryDelays,
	}

	run.StartedAt = time.Now().UTC()
	frontier.Push(c.SeedURL)

	var err error
	for frontier.Len() > 0 {
		if err = ctx.Err(); err != nil {
			run.Status = linkcrawl.RunCanceled
			break
		}
		// An approximate visited set undercounts; run.Visited is exact.
		if c.MaxVisited > 0 && len(run.Visited) >= c.MaxVisited {
			run.Status = linkcrawl.RunTruncated
			break
		}

		url, _ := frontier.Pop()

		// Visited at selection time, before any fetch completes.
		visited.Add(url)
		run.Visited = append(run.Visited, url)
		run.Iterations++

		direct := ProcessWithRetry(ctx, url, worker.Process, c.RetryDelays)
		batch := dispatcher.Dispatch(ctx, direct.Links.Sorted())

		candidates := make(linkcrawl.LinkSet, direct.Links.Len()+batch.Links.Len())
		candidates.Union(direct.Links)
		candidates.Union(batch.Links)

		failed := c.recordFailures(logger, run, append([]linkcrawl.FetchResult{direct}, batch.Results...))

		discovered := 0
		for _, link := range candidates.Sorted() {
			if visited.Contains(link) || frontier.Contains(link) {
				continue
			}
			frontier.Push(link)
			discovered++
		}

		logger.Debug("crawl iteration",
			"iteration", run.Iterations,
			"url", url,
			"batch", len(batch.Results),
			"discovered", discovered,
			"frontier", frontier.Len(),
			"visited", len(run.Visited),
		)
		if c.Progress != nil {
			c.Progress(linkcrawl.ProgressEvent{
				Iteration:    run.Iterations,
				URL:          url,
				FrontierSize: frontier.Len(),
				VisitedSize:  len(run.Visited),
				Discovered:   discovered,
				Failed:       failed,
			})
		}
	}

	run.FinishedAt = time.Now().UTC()
	return run, err
}

// recordFailures appends failed results to the run, logs them and returns
// how many there were. Fetches abandoned on cancellation are not failures.
func (c *Crawler) recordFailures(logger *slog.Logger, run *linkcrawl.Run, results []linkcrawl.FetchResult) int {
	failed := 0
	for _, r := range results {
		if r.OK() || linkcrawl.ErrorCode(r.Err) == linkcrawl.ECANCELED {
			continue
		}
		failed++
		f := r.Failure()
		run.Failures = append(run.Failures, f)
		logger.Warn("fetch failed",
			"url", f.URL,
			"code", f.Code,
			"err", f.Reason,
		)
	}
	return failed
}
