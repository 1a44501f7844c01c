// Package cli provides the command-line interface for maki.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maki-build/maki/internal/cli/commands"
	"github.com/maki-build/maki/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "maki",
		Short: "maki - Makefile target runner",
		Long: `maki discovers the targets in your Makefiles, lets you fuzzy-pick
one, prompts for the variables its recipe needs, and runs it.

Parse results are cached by content hash, so repeated invocations in
large repositories stay fast.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		// Bare "maki" picks interactively on a terminal, lists otherwise.
		RunE: func(cmd *cobra.Command, args []string) error {
			if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
				return runSubcommand(cmd, "pick")
			}
			return runSubcommand(cmd, "list")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./maki.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Makefile to use instead of auto-discovery")
	rootCmd.PersistentFlags().BoolP("all", "a", false, "Include private (underscore-prefixed) targets")
	rootCmd.PersistentFlags().Bool("patterns", false, "Include pattern rule targets (e.g. %.o)")
	rootCmd.PersistentFlags().BoolP("recursive", "r", false, "Search subdirectories for Makefiles")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Parse without reading or writing the cache")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print the make command instead of running it")
	rootCmd.PersistentFlags().StringP("chdir", "C", "", "Change to directory before doing anything")
	rootCmd.PersistentFlags().String("state-path", "", "Path to the cache database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewPickCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewCacheCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// runSubcommand dispatches the bare invocation to a named subcommand,
// reusing the already-loaded context.
func runSubcommand(cmd *cobra.Command, name string) error {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			sub.SetContext(cmd.Context())
			return sub.RunE(sub, nil)
		}
	}
	return fmt.Errorf("unknown command %q", name)
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Output: config.DefaultOutput}
}
