// Package history persists completed evaluations in a SQLite database so past
// work survives restarts. Persistence failures are reported to the caller and
// logged there; they never affect evaluation itself.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Schema for the evaluation history store.
const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
    id          TEXT PRIMARY KEY,
    expression  TEXT NOT NULL,
    exact       TEXT,
    approx      TEXT,
    error       TEXT,
    created_ns  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_ns);
`

// Entry is one stored evaluation. Exactly one of Exact/Approx or Error is
// meaningful.
type Entry struct {
	ID         uuid.UUID
	Expression string
	Exact      string
	Approx     string
	Error      string
	CreatedAt  time.Time
}

// Store is the SQLite evaluation history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path and runs
// migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append stores one completed evaluation.
func (s *Store) Append(e Entry) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO evaluations (id, expression, exact, approx, error, created_ns)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.Expression, e.Exact, e.Approx, e.Error, createdAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}

	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, expression, exact, approx, error, created_ns
		FROM evaluations
		ORDER BY created_ns DESC
		LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent evaluations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var id string
		var createdNs int64

		if err := rows.Scan(&id, &e.Expression, &e.Exact, &e.Approx, &e.Error, &createdNs); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}

		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse evaluation id: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdNs)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}

	return entries, nil
}

// Clear deletes the whole history.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM evaluations`); err != nil {
		return fmt.Errorf("clear evaluations: %w", err)
	}
	return nil
}
