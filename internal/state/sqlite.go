// Package state persists parse results and run history in SQLite.
//
// The parse cache is content-addressed: each entry is gated on a sha256
// fingerprint of the source file plus the parser version, so a stale or
// corrupt entry is indistinguishable from a miss. Entries are replaced
// atomically as whole rows, never partially updated.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed state store.
type Store struct {
	db            *sql.DB
	path          string
	parserVersion string
}

// NewStore creates a store gated on the given parser version. Entries
// written by any other version are treated as misses.
func NewStore(parserVersion string) *Store {
	return &Store{parserVersion: parserVersion}
}

// DefaultPath returns the per-user state database location.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not determine cache directory: %w", err)
	}
	return filepath.Join(dir, "maki", "state.db"), nil
}

// Open opens the database at path, creating parent directories as
// needed, and runs pending migrations. Use ":memory:" for tests.
func (s *Store) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping state database: %w", err)
	}

	s.db = db
	s.path = path

	if err := s.Migrate(); err != nil {
		db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database location this store was opened with.
func (s *Store) Path() string {
	return s.path
}

// generateID creates a new UUID for run rows.
func generateID() string {
	return uuid.New().String()
}
