package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run TARGET",
		Short: "Run a target by name",
		Long: `Run a specific Makefile target. Required variables detected in the
target's recipe are prompted for before execution.`,
		Example: `  # Run the build target
  maki run build

  # Show what would be executed
  maki run deploy --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0])
		},
	}
}

func runRun(cmd *cobra.Command, name string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := resolveMakefiles(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	targets, result := cmdCtx.Scanner.Scan(cmd.Context(), files)
	reportScanErrors(cmd, result)

	for i := range targets {
		if targets[i].Name == name {
			return executeTarget(cmd, cmdCtx, &targets[i])
		}
	}

	// Help with near-misses before giving up.
	var similar []string
	for _, t := range targets {
		if strings.Contains(t.Name, name) {
			similar = append(similar, t.Name)
		}
	}
	if len(similar) > 0 {
		return fmt.Errorf("target %q not found, did you mean: %s", name, strings.Join(similar, ", "))
	}
	return fmt.Errorf("target %q not found", name)
}
