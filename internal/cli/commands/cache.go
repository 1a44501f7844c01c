package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command with its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parse cache",
		Long: `Inspect and maintain the on-disk parse cache. Cached entries are
keyed by file path and invalidated automatically when a Makefile's
content changes.`,
	}

	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCachePruneCommand())
	cmd.AddCommand(newCacheStatsCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached parse results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if cmdCtx.Store == nil {
				return fmt.Errorf("cache is disabled")
			}

			if err := cmdCtx.Store.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	}
}

func newCachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop cache entries for Makefiles that no longer exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if cmdCtx.Store == nil {
				return fmt.Errorf("cache is disabled")
			}

			removed, err := cmdCtx.Store.Prune()
			if err != nil {
				return fmt.Errorf("failed to prune cache: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %d stale entries\n", removed)
			return nil
		},
	}
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if cmdCtx.Store == nil {
				return fmt.Errorf("cache is disabled")
			}

			stats, err := cmdCtx.Store.Stats()
			if err != nil {
				return fmt.Errorf("failed to read cache stats: %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Cache: %s\n", cmdCtx.Store.Path())
			_, _ = fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			_, _ = fmt.Fprintf(out, "Targets: %d\n", stats.TotalTargets)
			return nil
		},
	}
}
