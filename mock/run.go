package mock

import (
	"context"

	"github.com/fwojciec/linkcrawl"
)

var _ linkcrawl.RunService = (*RunService)(nil)

// RunService is a mock implementation of linkcrawl.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *linkcrawl.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*linkcrawl.Run, error)
	FindRunsFn    func(ctx context.Context, filter linkcrawl.RunFilter) ([]*linkcrawl.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *linkcrawl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*linkcrawl.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter linkcrawl.RunFilter) ([]*linkcrawl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
