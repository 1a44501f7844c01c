// Package output renders target listings in text, markdown, and JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/maki-build/maki/pkg/task"
)

// Mode selects how results are rendered.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ParseMode validates an output format flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeAuto, "":
		return ModeAuto, nil
	case ModeText:
		return ModeText, nil
	case ModeMarkdown, "md":
		return ModeMarkdown, nil
	case ModeJSON:
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, markdown, or json)", s)
	}
}

// Resolve maps ModeAuto to a concrete mode: text when stdout is a
// terminal, markdown when piped.
func (m Mode) Resolve() Mode {
	if m != ModeAuto {
		return m
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Renderer writes target listings to w.
type Renderer struct {
	w       io.Writer
	mode    Mode
	profile termenv.Profile
}

// NewRenderer creates a renderer; ModeAuto is resolved against the
// current terminal.
func NewRenderer(w io.Writer, mode Mode) *Renderer {
	return &Renderer{
		w:       w,
		mode:    mode.Resolve(),
		profile: termenv.ColorProfile(),
	}
}

// Targets renders the target list in the configured mode.
func (r *Renderer) Targets(targets []task.Target) error {
	switch r.mode {
	case ModeJSON:
		return r.renderJSON(targets)
	case ModeMarkdown:
		return r.renderMarkdown(targets)
	default:
		return r.renderText(targets)
	}
}

func (r *Renderer) renderJSON(targets []task.Target) error {
	if targets == nil {
		targets = []task.Target{}
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(targets)
}

func (r *Renderer) renderText(targets []task.Target) error {
	if len(targets) == 0 {
		_, _ = fmt.Fprintln(r.w, "(no targets)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target", "Description", "Variables", "Location"})

	for _, tgt := range targets {
		t.AppendRow(table.Row{
			r.colorName(tgt),
			tgt.Description,
			varSummary(tgt.RequiredVars),
			fmt.Sprintf("%s:%d", tgt.File, tgt.Line),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(r.w, "(%d targets)\n", len(targets))
	return nil
}

func (r *Renderer) renderMarkdown(targets []task.Target) error {
	if len(targets) == 0 {
		_, _ = fmt.Fprintln(r.w, "(no targets)")
		return nil
	}

	_, _ = fmt.Fprintln(r.w, "| Target | Description | Variables |")
	_, _ = fmt.Fprintln(r.w, "| --- | --- | --- |")
	for _, tgt := range targets {
		_, _ = fmt.Fprintf(r.w, "| `%s` | %s | %s |\n",
			tgt.Name, tgt.Description, varSummary(tgt.RequiredVars))
	}
	return nil
}

func (r *Renderer) colorName(t task.Target) string {
	s := termenv.String(t.Name)
	switch {
	case t.IsPattern():
		return s.Foreground(r.profile.Color("3")).String()
	case t.IsPrivate():
		return s.Faint().String()
	default:
		return s.Foreground(r.profile.Color("6")).String()
	}
}

func varSummary(vars []task.RequiredVar) string {
	if len(vars) == 0 {
		return ""
	}
	parts := make([]string, len(vars))
	for i, v := range vars {
		if v.Hint != "" {
			parts[i] = fmt.Sprintf("%s=%s", v.Name, v.Hint)
		} else {
			parts[i] = v.Name
		}
	}
	return strings.Join(parts, " ")
}
