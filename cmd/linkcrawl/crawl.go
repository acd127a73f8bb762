package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/fwojciec/linkcrawl/bloom"
	"github.com/fwojciec/linkcrawl/crawl"
	"github.com/fwojciec/linkcrawl/markdown"
)

// approximateFPRate is the Bloom filter false positive rate for --approximate.
const approximateFPRate = 0.001

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	seed, err := parseSeed(c.Seed)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		return err
	}
	prefix := c.Prefix
	if prefix == "" {
		prefix = seed.Scheme + "://" + seed.Host + "/"
	}

	crawler := crawl.NewCrawler(c.Seed, prefix)
	crawler.Fetcher = deps.Fetcher
	crawler.Extractor = deps.Extractor
	crawler.Logger = deps.Logger
	if c.Concurrency > 0 {
		crawler.Concurrency = c.Concurrency
	}
	if c.Timeout > 0 {
		crawler.FetchTimeout = c.Timeout
	}
	crawler.RetryDelays = crawl.RetryDelaysFor(c.Retries)
	crawler.MaxVisited = c.MaxVisited
	var approximate *bloom.VisitedSet
	if c.Approximate {
		approximate = bloom.NewVisitedSet(c.Capacity, approximateFPRate)
		crawler.Visited = approximate
	}
	crawler.Progress = func(event linkcrawl.ProgressEvent) {
		fmt.Fprintf(deps.Stdout, "iteration=%d frontier=%d visited=%d url=%s\n",
			event.Iteration, event.FrontierSize, event.VisitedSize, event.URL)
	}

	run, crawlErr := crawler.Run(deps.Ctx)
	if run == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(crawlErr))
		return crawlErr
	}
	if approximate != nil && deps.Logger != nil {
		deps.Logger.Debug("approximate visited set",
			"size_bits", approximate.SizeBits(),
			"estimated", approximate.EstimatedCount(),
			"visited", len(run.Visited),
		)
	}

	fmt.Fprintf(deps.Stdout, "Crawl %s: visited %d pages, %d failures, %d iterations in %s\n",
		run.Status, len(run.Visited), len(run.Failures), run.Iterations,
		run.Duration().Round(time.Millisecond))

	// A canceled crawl is still saved and reported.
	ctx := context.WithoutCancel(deps.Ctx)

	if c.Save {
		if err := deps.Runs.CreateRun(ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved run %s\n", run.ID)
	}

	if c.Report != "" {
		if err := writeReport(c.Report, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote report to %s\n", c.Report)
	}

	if isCanceled(crawlErr) {
		fmt.Fprintln(deps.Stderr, "Crawl interrupted; results are partial")
	}
	return crawlErr
}

func writeReport(path string, run *linkcrawl.Run) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return markdown.NewReportWriter(f).Write(run)
}

// DefaultPrefix returns the scheme://host/ prefix of an absolute HTTP(S) URL.
func DefaultPrefix(seed string) (string, error) {
	u, err := parseSeed(seed)
	if err != nil {
		return "", err
	}
	return u.Scheme + "://" + u.Host + "/", nil
}

// parseSeed returns an EINVALID error unless seed is an absolute HTTP(S) URL.
func parseSeed(seed string) (*url.URL, error) {
	u, err := url.Parse(seed)
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "invalid seed URL %q: %v", seed, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "seed URL %q must be an absolute http or https URL", seed)
	}
	return u, nil
}

// isCanceled reports whether err came from context cancellation.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
