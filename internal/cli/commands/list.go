package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all Makefile targets",
		Long: `List all discovered Makefile targets with their descriptions,
dependencies, and required variables.

Output adapts to environment:
  - Terminal: Styled table output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List targets (auto-detect output format)
  maki list

  # Include private and pattern targets
  maki list --all --patterns

  # List targets as JSON
  maki list --output json

  # Re-render whenever a Makefile changes
  maki list --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch Makefiles and re-render on change")

	return cmd
}

func runList(cmd *cobra.Command, watch bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := resolveMakefiles(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	render := func() error {
		targets, result := cmdCtx.Scanner.Scan(cmd.Context(), files)
		reportScanErrors(cmd, result)
		return cmdCtx.Renderer.Targets(targets)
	}

	if err := render(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	return watchAndRender(cmd, files, render)
}

// watchAndRender re-renders the listing whenever one of the makefiles
// changes on disk. Watches the parent directories so editors that
// replace files (rename-over-write) are still observed.
func watchAndRender(cmd *cobra.Command, files []string, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Debounce bursts of events from a single save.
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				abs = event.Name
			}
			if !watched[abs] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(100 * time.Millisecond)
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			if err := render(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)

		case <-sigCh:
			return nil

		case <-cmd.Context().Done():
			return nil
		}
	}
}
