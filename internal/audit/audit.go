// Package audit implements the append-only audit log for wrapper calls.
//
// Every platform call (including cache hits) is recorded with the tool
// name, the target it touched, the outcome and the duration. Entries are
// stamped with a per-process run ID so a session's calls can be grouped
// after the fact.
package audit

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Outcome values recorded for a call.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusCacheHit = "cache-hit"
)

// Entry is one call to record.
type Entry struct {
	Tool     string
	Target   string
	Status   string
	Duration time.Duration
	Detail   string
}

// Record is a persisted entry as read back from the log.
type Record struct {
	ID         int64  `json:"id"`
	RunID      string `json:"run_id"`
	Tool       string `json:"tool"`
	Target     string `json:"target"`
	Status     string `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Log is the SQLite-backed audit log.
type Log struct {
	db    *sql.DB
	runID string
}

// Open creates or opens the audit database at path. Each Open gets a
// fresh run ID.
func Open(path string) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("audit: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("audit: pragma %q: %w", p, err)
		}
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS calls (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			tool        TEXT NOT NULL,
			target      TEXT NOT NULL,
			status      TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			detail      TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_calls_run ON calls(run_id);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("audit: schema: %w", err)
	}

	return &Log{db: db, runID: uuid.NewString()}, nil
}

// RunID returns this process run's identifier.
func (l *Log) RunID() string {
	return l.runID
}

// Write appends one entry.
func (l *Log) Write(e Entry) error {
	_, err := l.db.Exec(
		`INSERT INTO calls (run_id, tool, target, status, duration_ms, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.runID, e.Tool, e.Target, e.Status, e.Duration.Milliseconds(), e.Detail,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("audit: write: %w", err)
	}
	return nil
}

// Recent returns the newest entries, newest first.
func (l *Log) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.Query(
		`SELECT id, run_id, tool, target, status, duration_ms, detail, created_at
		 FROM calls ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("audit: query recent: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.RunID, &r.Tool, &r.Target, &r.Status,
			&r.DurationMS, &r.Detail, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (l *Log) Close() error {
	return l.db.Close()
}
