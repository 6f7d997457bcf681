// Package history records publish attempts in a local SQLite ledger.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// StatusPublished and StatusFailed are the recorded outcomes of an attempt.
const (
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Record is one publish attempt.
type Record struct {
	ID        string
	Artifact  string
	Source    string
	Commit    string
	Status    string
	ExitCode  int
	CreatedAt time.Time
}

// Store is a SQLite-backed publish ledger.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and if needed creates) the ledger at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create ledger directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS releases (
		id TEXT PRIMARY KEY,
		artifact TEXT NOT NULL,
		source TEXT NOT NULL,
		commit_hash TEXT,
		status TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_releases_created_at ON releases(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append adds a publish attempt to the ledger. A missing ID or timestamp is
// filled in.
func (s *Store) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO releases (id, artifact, source, commit_hash, status, exit_code, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Artifact, rec.Source, rec.Commit, rec.Status, rec.ExitCode, rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert release: %w", err)
	}
	return nil
}

// List returns up to limit attempts, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT id, artifact, source, commit_hash, status, exit_code, created_at FROM releases ORDER BY created_at DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query releases: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdUnix int64
		if err := rows.Scan(&rec.ID, &rec.Artifact, &rec.Source, &rec.Commit, &rec.Status, &rec.ExitCode, &createdUnix); err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		rec.CreatedAt = time.Unix(createdUnix, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}
