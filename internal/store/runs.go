package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunStatus is the lifecycle state of one load run.
type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// Run records one execution of the load step.
type Run struct {
	ID          string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	RowsLoaded  int64
	Error       string
}

// CreateRun opens a new run in the running state.
func (s *Store) CreateRun(ctx context.Context) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO runs (id, status, started_at) VALUES (?, ?, ?)"),
		run.ID, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	s.logger.Debug("created run", "id", run.ID)
	return run, nil
}

// CompleteRun closes a run with its final status and row count.
func (s *Store) CompleteRun(ctx context.Context, id string, status RunStatus, rowsLoaded int64, errMsg string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		s.rebind("UPDATE runs SET status = ?, completed_at = ?, rows_loaded = ?, error = ? WHERE id = ?"),
		string(status), now, rowsLoaded, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("complete run: no run with id %s", id)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{}
	var status string
	var completedAt sql.NullTime
	var errMsg sql.NullString

	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, status, started_at, completed_at, rows_loaded, error FROM runs WHERE id = ?"),
		id,
	).Scan(&run.ID, &status, &run.StartedAt, &completedAt, &run.RowsLoaded, &errMsg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	run.Status = RunStatus(status)
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	run.Error = errMsg.String
	return run, nil
}
