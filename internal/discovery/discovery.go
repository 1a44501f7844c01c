// Package discovery locates Makefiles and turns them into target lists,
// consulting the parse cache so unchanged files are never re-parsed.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maki-build/maki/internal/parser"
	"github.com/maki-build/maki/internal/state"
	"github.com/maki-build/maki/pkg/task"
)

// makefileNames are the file names considered Makefiles, in preference
// order for the non-recursive case.
var makefileNames = []string{"Makefile", "makefile", "GNUmakefile"}

// FindMakefiles returns candidate Makefile paths under dir. In recursive
// mode the whole tree is walked; otherwise only dir itself is checked.
func FindMakefiles(dir string, recursive bool) ([]string, error) {
	if !recursive {
		var found []string
		for _, name := range makefileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				found = append(found, p)
			}
		}
		return found, nil
	}

	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // unreadable subtrees are skipped, not fatal
		}
		if d.IsDir() {
			if name := d.Name(); name != "." && len(name) > 1 && name[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		for _, name := range makefileNames {
			if d.Name() == name {
				found = append(found, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return found, nil
}

// FileError is a non-fatal per-file failure. One broken Makefile never
// aborts discovery of the others.
type FileError struct {
	Path    string
	Message string
}

// Result carries discovery statistics alongside the target list.
type Result struct {
	FilesTotal  int
	FilesParsed int
	FilesCached int
	Errors      []FileError
	Duration    time.Duration
}

// HasErrors reports whether any per-file errors occurred.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Scanner coordinates parsing, caching, and filtering across files.
type Scanner struct {
	parser *parser.Parser
	store  *state.Store // nil disables caching entirely
	filter task.FilterOptions
	logger *slog.Logger
}

// NewScanner creates a scanner. Passing a nil store puts the cache in
// bypass mode: it is never consulted or written, with no effect on the
// produced targets.
func NewScanner(p *parser.Parser, store *state.Store, filter task.FilterOptions, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{parser: p, store: store, filter: filter, logger: logger}
}

// Scan processes each file independently (in parallel), merges the
// per-file results in input order with first-seen name precedence, applies
// the visibility filter, and returns the final list sorted by name.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]task.Target, *Result) {
	start := time.Now()
	result := &Result{FilesTotal: len(paths)}

	perFile := make([][]task.Target, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			targets, cached, err := s.scanFile(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, FileError{Path: path, Message: err.Error()})
				return nil
			}
			if cached {
				result.FilesCached++
			} else {
				result.FilesParsed++
			}
			perFile[i] = targets
			return nil
		})
	}
	// The only error a worker returns is context cancellation; partial
	// results for completed files are still merged below.
	_ = g.Wait()

	seen := make(map[string]bool)
	var merged []task.Target
	for _, targets := range perFile {
		for _, t := range targets {
			if seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			merged = append(merged, t)
		}
	}

	merged = task.Filter(merged, s.filter)
	task.SortByName(merged)

	result.Duration = time.Since(start)
	s.logger.Debug("discovery completed",
		"files_total", result.FilesTotal,
		"files_parsed", result.FilesParsed,
		"files_cached", result.FilesCached,
		"targets", len(merged),
		"duration_ms", result.Duration.Milliseconds())

	return merged, result
}

// scanFile resolves one file through the cache or the parser.
func (s *Scanner) scanFile(path string) (targets []task.Target, cached bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read makefile: %w", err)
	}

	if s.store == nil {
		return s.parser.ParseContent(path, string(content)), false, nil
	}

	fingerprint := state.Fingerprint(content)
	if hit, ok := s.store.Lookup(path, fingerprint); ok {
		s.logger.Debug("cache hit", "path", path)
		return hit, true, nil
	}

	targets = s.parser.ParseContent(path, string(content))
	if putErr := s.store.Put(path, fingerprint, targets); putErr != nil {
		// Caching is best-effort; a failed write never fails the scan.
		s.logger.Warn("failed to write cache entry", "path", path, "error", putErr)
	}
	return targets, false, nil
}
