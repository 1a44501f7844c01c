// Package executor invokes the external make tool for a selected target.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Variable is one NAME=VALUE assignment appended to the make invocation.
// Order is preserved as prompted.
type Variable struct {
	Name  string
	Value string
}

// Options configures a single target execution.
type Options struct {
	// DryRun prints the command without executing it.
	DryRun bool
	// Dir is the working directory for make; empty means inherit.
	Dir string
	// Makefile is passed via -f when non-empty.
	Makefile string
	// Variables are appended as NAME=VALUE arguments.
	Variables []Variable

	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Result describes a finished (or would-be) execution.
type Result struct {
	Command  string
	ExitCode int
	Duration time.Duration
}

// BuildArgs assembles the make argument list for a target.
func BuildArgs(target string, opts Options) []string {
	args := []string{}
	if opts.Makefile != "" {
		args = append(args, "-f", opts.Makefile)
	}
	args = append(args, target)
	for _, v := range opts.Variables {
		args = append(args, fmt.Sprintf("%s=%s", v.Name, v.Value))
	}
	return args
}

// CommandString renders the full invocation for display and run history.
func CommandString(target string, opts Options) string {
	return "make " + strings.Join(BuildArgs(target, opts), " ")
}

// Run executes make for the target, inheriting stdio so interactive
// recipes work. A non-zero exit from make is reported in the Result, not
// as an error; errors mean the process could not be started at all.
func Run(ctx context.Context, target string, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{Command: CommandString(target, opts)}

	if opts.DryRun {
		return result, nil
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, "make", BuildArgs(target, opts)...)
	cmd.Dir = opts.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Debug("executing target", "command", result.Command, "dir", opts.Dir)

	start := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(start)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("failed to execute %q: %w", result.Command, err)
	}
	return result, nil
}

// MakeAvailable reports whether make can be found on PATH.
func MakeAvailable() bool {
	_, err := exec.LookPath("make")
	return err == nil
}
