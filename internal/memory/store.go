// Package memory persists completed swarm runs: one markdown archive
// per run plus a SQLite index of every run ever made.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// RunRecord is one indexed swarm run.
type RunRecord struct {
	ID          string
	Title       string
	Prompt      string
	AgentCount  int
	SuccessRate float64
	ArchivePath string
	CreatedAt   time.Time
}

// Store provides SQLite-backed indexing of swarm runs.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// DefaultDBPath returns the path to the run index database under the
// XDG data directory.
func DefaultDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "hivemind", "runs.db")
}

// NewStore opens the run index at dbPath, creating parent directories
// and the schema as needed.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := conn.Exec(runSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: conn, dbPath: dbPath}, nil
}

const runSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	title TEXT,
	prompt TEXT NOT NULL,
	agent_count INTEGER NOT NULL,
	success_rate REAL NOT NULL,
	archive_path TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// IndexRun records one completed run in the index.
func (s *Store) IndexRun(ctx context.Context, rec RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, title, prompt, agent_count, success_rate, archive_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Prompt, rec.AgentCount, rec.SuccessRate,
		rec.ArchivePath, formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("index run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, prompt, agent_count, success_rate, archive_path, created_at
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Prompt, &rec.AgentCount,
			&rec.SuccessRate, &rec.ArchivePath, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := parseTime(createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Path returns the path to the database file.
func (s *Store) Path() string {
	return s.dbPath
}

// formatTime formats a time.Time for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a time string from SQLite.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
