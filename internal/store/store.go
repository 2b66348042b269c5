package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"popcli/internal/errors"
)

// Run is one recorded analysis run.
type Run struct {
	ID               string     `json:"id"`
	Mode             string     `json:"mode"`
	PriorDate        string     `json:"prior_date"`
	CurrentDate      string     `json:"current_date"`
	Status           string     `json:"status"`
	ReportPath       string     `json:"report_path,omitempty"`
	GroupCount       int        `json:"group_count"`
	CoercionFailures int        `json:"coercion_failures"`
	Error            string     `json:"error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store persists run history in SQLite.
type Store struct {
	logger *slog.Logger
	db     *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	mode              TEXT NOT NULL,
	prior_date        TEXT NOT NULL,
	current_date      TEXT NOT NULL,
	status            TEXT NOT NULL,
	report_path       TEXT NOT NULL DEFAULT '',
	group_count       INTEGER NOT NULL DEFAULT 0,
	coercion_failures INTEGER NOT NULL DEFAULT 0,
	error             TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMP NOT NULL,
	completed_at      TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`

// Open opens (creating if needed) the run-history database at dbPath.
func Open(logger *slog.Logger, dbPath string) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, errors.NewStorageError("failed to open run database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStorageError("failed to apply run schema", err)
	}

	logger.Info("run store opened", slog.String("db_path", dbPath))
	return &Store{
		logger: logger.With(slog.String("component", "store")),
		db:     db,
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun inserts a new run in the running state.
func (s *Store) CreateRun(ctx context.Context, run *Run) error {
	run.Status = StatusRunning
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, mode, prior_date, current_date, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.PriorDate, run.CurrentDate, run.Status, run.CreatedAt)
	if err != nil {
		return errors.NewStorageError("failed to record run", err)
	}
	return nil
}

// CompleteRun marks a run completed with its result summary.
func (s *Store) CompleteRun(ctx context.Context, id, reportPath string, groupCount, coercionFailures int) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, report_path = ?, group_count = ?, coercion_failures = ?, completed_at = ?
		 WHERE id = ?`,
		StatusCompleted, reportPath, groupCount, coercionFailures, now, id)
	if err != nil {
		return errors.NewStorageError("failed to complete run", err)
	}
	return s.requireRowAffected(res, id)
}

// FailRun marks a run failed with the failure message.
func (s *Store) FailRun(ctx context.Context, id, message string) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, completed_at = ? WHERE id = ?`,
		StatusFailed, message, now, id)
	if err != nil {
		return errors.NewStorageError("failed to mark run failed", err)
	}
	return s.requireRowAffected(res, id)
}

// GetRun fetches one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, mode, prior_date, current_date, status, report_path,
		        group_count, coercion_failures, error, created_at, completed_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("run")
	}
	if err != nil {
		return nil, errors.NewStorageError("failed to load run", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, prior_date, current_date, status, report_path,
		        group_count, coercion_failures, error, created_at, completed_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.NewStorageError("failed to list runs", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.NewStorageError("failed to scan run", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("failed to iterate runs", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var run Run
	var completedAt sql.NullTime
	err := sc.Scan(&run.ID, &run.Mode, &run.PriorDate, &run.CurrentDate, &run.Status,
		&run.ReportPath, &run.GroupCount, &run.CoercionFailures, &run.Error,
		&run.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return &run, nil
}

func (s *Store) requireRowAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewStorageError("failed to check update result", err)
	}
	if n == 0 {
		return errors.NewNotFoundError("run").WithContext("id", id)
	}
	return nil
}
