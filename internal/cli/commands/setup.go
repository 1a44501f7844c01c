package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maki-build/maki/internal/cli/config"
	"github.com/maki-build/maki/internal/cli/output"
	"github.com/maki-build/maki/internal/discovery"
	"github.com/maki-build/maki/internal/parser"
	"github.com/maki-build/maki/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Scanner  *discovery.Scanner
	Store    *state.Store
	Renderer *output.Renderer
}

// NewCommandContext builds the scanner and cache store from the current
// configuration. Returns the context and a cleanup function that must be
// called (typically via defer). With --no-cache the Store is nil and the
// scanner parses every file.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	var store *state.Store
	if !cfg.NoCache {
		s, err := openStore(cfg)
		if err != nil {
			// A broken cache should not block parsing.
			logger.Warn("cache unavailable, parsing without it", "error", err)
		} else {
			store = s
		}
	}

	p := parser.NewParser(cfg.ExcludeVars...)
	scanner := discovery.NewScanner(p, store, cfg.FilterOptions(), logger)

	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), mode)

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Scanner:  scanner,
		Store:    store,
		Renderer: r,
	}, cleanup, nil
}

// getConfig returns the current configuration.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return &config.Config{
		Output:      config.DefaultOutput,
		ProjectRoot: cwd,
	}
}

func openStore(cfg *config.Config) (*state.Store, error) {
	path := cfg.StatePath
	if path == "" {
		var err error
		path, err = state.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
	}

	store := state.NewStore(parser.Version)
	if err := store.Open(path); err != nil {
		return nil, err
	}
	return store, nil
}

// resolveMakefiles returns the makefiles to scan. An explicit --file
// wins; otherwise the project root is searched.
func resolveMakefiles(cfg *config.Config) ([]string, error) {
	if cfg.File != "" {
		if _, err := os.Stat(cfg.File); err != nil {
			return nil, fmt.Errorf("makefile %s: %w", cfg.File, err)
		}
		return []string{cfg.File}, nil
	}

	files, err := discovery.FindMakefiles(cfg.ProjectRoot, cfg.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no makefile found in %s", cfg.ProjectRoot)
	}
	return files, nil
}

// reportScanErrors prints per-file parse failures to stderr without
// failing the command.
func reportScanErrors(cmd *cobra.Command, result *discovery.Result) {
	for _, fe := range result.Errors {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", fe.Path, fe.Message)
	}
}
