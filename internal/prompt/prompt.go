// Package prompt collects values for a target's required variables
// before execution.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/maki-build/maki/internal/executor"
	"github.com/maki-build/maki/pkg/task"
)

// ErrAborted is returned when the user cancels prompting.
var ErrAborted = errors.New("prompt aborted")

// ForVariables asks for a value for each required variable in order.
// Enumerated hints are offered as tab-completions; an empty answer picks
// the first option. Ctrl-C aborts the whole run.
func ForVariables(vars []task.RequiredVar) ([]executor.Variable, error) {
	values := make([]executor.Variable, 0, len(vars))
	for _, v := range vars {
		value, err := forVariable(v)
		if err != nil {
			return nil, err
		}
		values = append(values, executor.Variable{Name: v.Name, Value: value})
	}
	return values, nil
}

func forVariable(v task.RequiredVar) (string, error) {
	options := v.Options()

	cfg := &readline.Config{
		Prompt:          promptText(v, options),
		InterruptPrompt: "^C",
	}
	if len(options) > 0 {
		items := make([]readline.PrefixCompleterInterface, len(options))
		for i, opt := range options {
			items[i] = readline.PcItem(opt)
		}
		cfg.AutoComplete = readline.NewPrefixCompleter(items...)
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" && len(options) > 0 {
			// Default to the first enumerated option.
			return options[0], nil
		}
		if line != "" {
			return line, nil
		}
	}
}

// promptText renders the question for one variable, showing enumerated
// options inline.
func promptText(v task.RequiredVar, options []string) string {
	if len(options) > 1 {
		return fmt.Sprintf("%s (%s) [%s]: ", v.Name, strings.Join(options, "|"), options[0])
	}
	if v.Hint != "" {
		return fmt.Sprintf("%s (hint: %s): ", v.Name, v.Hint)
	}
	return v.Name + ": "
}
