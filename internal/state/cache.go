package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/maki-build/maki/pkg/task"
)

// CacheEntry is one persisted parse result, keyed by file path.
type CacheEntry struct {
	FilePath      string
	Fingerprint   string
	ParserVersion string
	Targets       []task.Target
}

// Lookup returns the cached targets for a file path when the stored
// fingerprint matches the given one and the entry was written by the
// current parser version. Any other outcome, including a corrupt or
// unreadable entry, is reported as a plain miss: cache failures are
// never surfaced to callers.
func (s *Store) Lookup(filePath, fingerprint string) ([]task.Target, bool) {
	if s.db == nil {
		return nil, false
	}

	var storedFingerprint, storedVersion, targetsJSON string
	err := s.db.QueryRow(
		`SELECT fingerprint, parser_version, targets FROM parse_cache WHERE file_path = ?`,
		filePath,
	).Scan(&storedFingerprint, &storedVersion, &targetsJSON)
	if err != nil {
		return nil, false
	}

	if storedFingerprint != fingerprint || storedVersion != s.parserVersion {
		return nil, false
	}

	var targets []task.Target
	if err := json.Unmarshal([]byte(targetsJSON), &targets); err != nil {
		return nil, false
	}
	return targets, true
}

// Put atomically replaces the cache entry for a file path. The row is
// written as a whole in a single statement, so a concurrent reader never
// observes a torn entry.
func (s *Store) Put(filePath, fingerprint string, targets []task.Target) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	targetsJSON, err := json.Marshal(targets)
	if err != nil {
		return fmt.Errorf("failed to serialize targets: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO parse_cache (file_path, fingerprint, parser_version, targets, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(file_path) DO UPDATE SET
		   fingerprint = excluded.fingerprint,
		   parser_version = excluded.parser_version,
		   targets = excluded.targets,
		   updated_at = excluded.updated_at`,
		filePath, fingerprint, s.parserVersion, string(targetsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Invalidate removes the entry for a single file path.
func (s *Store) Invalidate(filePath string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM parse_cache WHERE file_path = ?`, filePath); err != nil {
		return fmt.Errorf("failed to invalidate cache entry: %w", err)
	}
	return nil
}

// Clear removes every cache entry.
func (s *Store) Clear() error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.Exec(`DELETE FROM parse_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Prune removes entries whose source file no longer exists on disk.
// Returns the number of entries removed.
func (s *Store) Prune() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`SELECT file_path FROM parse_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return 0, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate cache entries: %w", err)
	}

	for _, path := range stale {
		if _, err := s.db.Exec(`DELETE FROM parse_cache WHERE file_path = ?`, path); err != nil {
			return 0, fmt.Errorf("failed to prune %s: %w", path, err)
		}
	}
	return len(stale), nil
}

// CacheStats summarizes the persisted cache.
type CacheStats struct {
	Entries      int
	TotalTargets int
}

// Stats reports entry and target counts across the cache.
func (s *Store) Stats() (*CacheStats, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`SELECT targets FROM parse_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	defer rows.Close()

	stats := &CacheStats{}
	for rows.Next() {
		var targetsJSON string
		if err := rows.Scan(&targetsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		stats.Entries++

		var targets []task.Target
		if err := json.Unmarshal([]byte(targetsJSON), &targets); err == nil {
			stats.TotalTargets += len(targets)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache: %w", err)
	}
	return stats, nil
}
