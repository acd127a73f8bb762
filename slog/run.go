package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// Ensure LoggingRunService implements linkcrawl.RunService.
var _ linkcrawl.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with logging.
type LoggingRunService struct {
	next   linkcrawl.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next linkcrawl.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *linkcrawl.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create run",
			"id", run.ID,
			"seed", run.SeedURL,
			"visited", len(run.Visited),
			"failures", len(run.Failures),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FindRunByID delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (run *linkcrawl.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) FindRuns(ctx context.Context, filter linkcrawl.RunFilter) (runs []*linkcrawl.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find runs",
			"count", len(runs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}

// DeleteRun delegates to the wrapped service and logs the operation.
func (s *LoggingRunService) DeleteRun(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRun(ctx, id)
}
