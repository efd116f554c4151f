// Package history records batch runs in the local SQLite ledger.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run statuses.
const (
	StatusSuccess = "success"
	StatusPartial = "partial" // completed with skipped steps
	StatusFailed  = "failed"  // aborted and rolled back
)

// Step statuses.
const (
	StepGenerated = "generated"
	StepSkipped   = "skipped"
)

// Run is one recorded batch invocation.
type Run struct {
	ID         int64
	SchemaPath string
	Status     string
	Modules    int
	Entities   int
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []Step
}

// Step is one recorded plan step.
type Step struct {
	Type   string // "module" or "entity"
	Name   string // qualified name
	Status string
}

// Store persists runs with SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store on an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordRun persists a run and its steps atomically.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO runs (schema_path, status, modules, entities, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.SchemaPath, run.Status, run.Modules, run.Entities, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get run id: %w", err)
	}
	run.ID = runID

	for i, step := range run.Steps {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_steps (run_id, position, step_type, name, status) VALUES (?, ?, ?, ?, ?)",
			runID, i+1, step.Type, step.Name, step.Status,
		); err != nil {
			return fmt.Errorf("failed to record step %s: %w", step.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first, without step detail.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, schema_path, status, modules, entities, started_at, finished_at FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.SchemaPath, &r.Status, &r.Modules, &r.Entities, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetSteps returns the recorded steps of one run in plan order.
func (s *Store) GetSteps(ctx context.Context, runID int64) ([]Step, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT step_type, name, status FROM run_steps WHERE run_id = ? ORDER BY position",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var st Step
		if err := rows.Scan(&st.Type, &st.Name, &st.Status); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}
