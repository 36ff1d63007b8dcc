// Package store keeps a history of evaluations in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	target      TEXT NOT NULL,
	result      TEXT NOT NULL,
	modulated   TEXT NOT NULL,
	error       TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at);
`

// Run is one recorded evaluation.
type Run struct {
	ID uuid.UUID
	// Source is the program file, or "-e" for inline programs.
	Source string
	// Target is the identifier of the evaluated statement.
	Target string
	// Result is the rendered value; empty when evaluation failed.
	Result string
	// Modulated is the bit string of the result, if it has one.
	Modulated string
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// NewRun starts a run record with a fresh ID.
func NewRun(source, target string, startedAt time.Time) Run {
	return Run{
		ID:        uuid.New(),
		Source:    source,
		Target:    target,
		StartedAt: startedAt,
	}
}

// Failed reports whether the run ended with an error.
func (r Run) Failed() bool { return r.Error != "" }

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores r. A zero ID is replaced with a fresh one.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, target, result, modulated, error, started_at, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Source, r.Target, r.Result, r.Modulated, r.Error,
		r.StartedAt.UnixNano(), int64(r.Duration),
	)
	if err != nil {
		return r, fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return r, nil
}

// Get loads a single run.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, target, result, modulated, error, started_at, duration_ns
		 FROM runs WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, target, result, modulated, error, started_at, duration_ns
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r        Run
		id       string
		started  int64
		duration int64
	)
	if err := sc.Scan(&id, &r.Source, &r.Target, &r.Result, &r.Modulated, &r.Error, &started, &duration); err != nil {
		return Run{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("run %q: %w", id, err)
	}
	r.ID = parsed
	r.StartedAt = time.Unix(0, started)
	r.Duration = time.Duration(duration)
	return r, nil
}
