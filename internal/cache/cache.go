// Package cache implements the shared response cache for the platform
// clients.
//
// It is a plain SQLite TTL cache: entries carry an absolute expiry,
// expired rows are invisible to readers and purged opportunistically on
// write. Keys are SHA-256 hashes of the request shape, so no credential
// or query text ends up in the key column.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store is a SQLite-backed TTL cache. Safe for concurrent use; all
// mutation goes through the database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("cache: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("cache: pragma %q: %w", p, err)
		}
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS responses (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_responses_expiry ON responses(expires_at);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("cache: schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Key derives a cache key from the request shape parts.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key, or ok=false when the key is
// absent or expired.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(
		`SELECT value FROM responses WHERE key = ? AND expires_at > ?`,
		key, time.Now().Unix(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get: %w", err)
	}
	return value, true, nil
}

// Set stores value under key for ttl. A non-positive ttl is a no-op:
// the caller opted out of caching for that service.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO responses (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, time.Now().Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	s.purge()
	return nil
}

// purge drops expired rows. Best effort; a failed purge never fails the
// write that triggered it.
func (s *Store) purge() {
	_, _ = s.db.Exec(`DELETE FROM responses WHERE expires_at <= ?`, time.Now().Unix())
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
