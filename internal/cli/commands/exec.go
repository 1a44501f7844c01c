package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maki-build/maki/internal/executor"
	"github.com/maki-build/maki/internal/prompt"
	"github.com/maki-build/maki/internal/state"
	"github.com/maki-build/maki/pkg/task"
)

// executeTarget prompts for the target's variables, invokes make, and
// records the run. A dry run only prints the command line.
func executeTarget(cmd *cobra.Command, cmdCtx *CommandContext, target *task.Target) error {
	vars, err := prompt.ForVariables(target.RequiredVars)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
			return nil
		}
		return err
	}

	opts := executor.Options{
		DryRun:    cmdCtx.Cfg.DryRun,
		Dir:       cmdCtx.Cfg.ProjectRoot,
		Makefile:  cmdCtx.Cfg.File,
		Variables: vars,
		Stdout:    cmd.OutOrStdout(),
		Stderr:    cmd.ErrOrStderr(),
	}

	if opts.DryRun {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), executor.CommandString(target.Name, opts))
		return nil
	}

	if !executor.MakeAvailable() {
		return fmt.Errorf("make not found in PATH")
	}

	start := time.Now()
	result, err := executor.Run(cmd.Context(), target.Name, opts, cmdCtx.Logger)
	recordRun(cmdCtx, target, vars, result, start, err)
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", target.Name, err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("make %s exited with code %d", target.Name, result.ExitCode)
	}
	return nil
}

// recordRun stores the run outcome; history is best-effort.
func recordRun(cmdCtx *CommandContext, target *task.Target, vars []executor.Variable, result *executor.Result, start time.Time, runErr error) {
	if cmdCtx.Store == nil || result == nil {
		return
	}

	status := state.RunStatusSuccess
	if runErr != nil || result.ExitCode != 0 {
		status = state.RunStatusFailed
	}

	varParts := make([]string, len(vars))
	for i, v := range vars {
		varParts[i] = v.Name + "=" + v.Value
	}

	run := state.Run{
		Target:     target.Name,
		FilePath:   target.File,
		Variables:  strings.Join(varParts, " "),
		Status:     status,
		StartedAt:  start.UTC(),
		DurationMs: result.Duration.Milliseconds(),
	}
	if err := cmdCtx.Store.RecordRun(run); err != nil {
		cmdCtx.Logger.Warn("failed to record run", "target", target.Name, "error", err)
	}
}
