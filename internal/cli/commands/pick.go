package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maki-build/maki/internal/tui"
)

// NewPickCommand creates the pick command.
func NewPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Interactively pick and run a target",
		Long: `Open a fuzzy finder over all discovered targets. The selected
target is executed after prompting for any required variables.`,
		Example: `  # Pick a target interactively
  maki pick

  # Pick including private targets
  maki pick --all

  # Show the command without running it
  maki pick --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPick(cmd)
		},
	}
}

func runPick(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("pick requires an interactive terminal (use 'maki list' when piping)")
	}

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
	if len(targets) == 0 {
		return fmt.Errorf("no targets found")
	}

	choice, err := tui.Pick(targets)
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}
	if choice == nil {
		// Cancelled with ESC.
		return nil
	}

	return executeTarget(cmd, cmdCtx, choice)
}
