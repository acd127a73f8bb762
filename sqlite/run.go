package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/linkcrawl"
	"github.com/google/uuid"
)

// Ensure RunService implements linkcrawl.RunService.
var _ linkcrawl.RunService = (*RunService)(nil)

// RunService implements linkcrawl.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run with its visited URLs and failures in one
// transaction and assigns it a new ID.
func (s *RunService) CreateRun(ctx context.Context, run *linkcrawl.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = run.StartedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, scope_prefix, status, iterations, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, run.ScopePrefix, string(run.Status), run.Iterations,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := insertPages(ctx, tx, run.ID, run.Visited); err != nil {
		return err
	}
	if err := insertFailures(ctx, tx, run.ID, run.Failures); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func insertPages(ctx context.Context, tx *sql.Tx, runID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_pages (run_id, position, url) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for i, u := range urls {
		if _, err := stmt.ExecContext(ctx, runID, i, u); err != nil {
			return fmt.Errorf("failed to insert page %s: %w", u, err)
		}
	}
	return nil
}

func insertFailures(ctx context.Context, tx *sql.Tx, runID string, failures []linkcrawl.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_failures (run_id, position, url, code, reason) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare failure insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range failures {
		if _, err := stmt.ExecContext(ctx, runID, i, f.URL, f.Code, f.Reason); err != nil {
			return fmt.Errorf("failed to insert failure %s: %w", f.URL, err)
		}
	}
	return nil
}

// FindRunByID retrieves a run by ID, including visited URLs and failures.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*linkcrawl.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, scope_prefix, status, iterations, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, linkcrawl.Errorf(linkcrawl.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachDetails(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter linkcrawl.RunFilter) ([]*linkcrawl.Run, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, seed_url, scope_prefix, status, iterations, started_at, finished_at
		FROM runs WHERE 1=1
	`)
	var args []any

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	var runs []*linkcrawl.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	// Release the single connection before loading details.
	rows.Close()

	for _, run := range runs {
		if err := s.attachDetails(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// DeleteRun permanently removes a run and its pages and failures.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return linkcrawl.Errorf(linkcrawl.ENOTFOUND, "run not found")
	}
	return nil
}

func (s *RunService) attachDetails(ctx context.Context, run *linkcrawl.Run) error {
	pages, err := s.db.QueryContext(ctx, `
		SELECT url FROM run_pages WHERE run_id = ? ORDER BY position
	`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to query pages: %w", err)
	}
	defer pages.Close()

	run.Visited = []string{}
	for pages.Next() {
		var u string
		if err := pages.Scan(&u); err != nil {
			return fmt.Errorf("failed to scan page: %w", err)
		}
		run.Visited = append(run.Visited, u)
	}
	if err := pages.Err(); err != nil {
		return fmt.Errorf("failed to iterate pages: %w", err)
	}
	pages.Close()

	failures, err := s.db.QueryContext(ctx, `
		SELECT url, code, reason FROM run_failures WHERE run_id = ? ORDER BY position
	`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to query failures: %w", err)
	}
	defer failures.Close()

	run.Failures = []linkcrawl.Failure{}
	for failures.Next() {
		var f linkcrawl.Failure
		if err := failures.Scan(&f.URL, &f.Code, &f.Reason); err != nil {
			return fmt.Errorf("failed to scan failure: %w", err)
		}
		run.Failures = append(run.Failures, f)
	}
	if err := failures.Err(); err != nil {
		return fmt.Errorf("failed to iterate failures: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*linkcrawl.Run, error) {
	var run linkcrawl.Run
	var status, startedAt, finishedAt string

	err := row.Scan(&run.ID, &run.SeedURL, &run.ScopePrefix, &status, &run.Iterations, &startedAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Status = linkcrawl.RunStatus(status)
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
