package linkcrawl

import (
	"context"
	"time"
)

// RunStatus describes how a crawl ended.
type RunStatus string

// Crawl end states.
const (
	RunCompleted RunStatus = "completed" // frontier emptied
	RunTruncated RunStatus = "truncated" // visited cap reached
	RunCanceled  RunStatus = "canceled"  // context canceled
)

// Valid reports whether s is a known status.
func (s RunStatus) Valid() bool {
	switch s {
	case RunCompleted, RunTruncated, RunCanceled:
		return true
	}
	return false
}

// Run is the record of a single crawl.
type Run struct {
	ID          string
	SeedURL     string
	ScopePrefix string

	// Visited lists URLs in the order they were selected for fetching.
	Visited []string

	// Failures lists every fetch that failed during the crawl, both
	// direct fetches and batch fetches.
	Failures []Failure

	Iterations int
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	if r.ScopePrefix == "" {
		return Errorf(EINVALID, "run scope prefix required")
	}
	if !r.Status.Valid() {
		return Errorf(EINVALID, "unknown run status %q", r.Status)
	}
	return nil
}

// Duration returns the wall time the crawl took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunFilter represents a filter used by FindRuns.
type RunFilter struct {
	ID      *string
	SeedURL *string

	Offset int
	Limit  int
}

// RunService represents a service for storing finished crawls.
type RunService interface {
	// CreateRun stores a run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run, including visited URLs and failures.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// ProgressEvent reports the state of a crawl after one iteration.
type ProgressEvent struct {
	Iteration    int
	URL          string
	FrontierSize int
	VisitedSize  int
	Discovered   int // links added to the frontier this iteration
	Failed       int // failed fetches this iteration
}

// ProgressFunc is called once per crawl iteration.
type ProgressFunc func(ProgressEvent)
