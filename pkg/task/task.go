// Package task defines the shared target types produced by the Makefile
// parser and consumed by the CLI, picker, and executor layers.
package task

import (
	"fmt"
	"sort"
	"strings"
)

// RequiredVar is a variable a target expects the caller to supply,
// discovered from an enumerated hint comment or a recipe reference.
type RequiredVar struct {
	// Name is the variable name (e.g., "V", "ENV").
	Name string `json:"name"`
	// Hint is the literal pipe-delimited option list from a hint comment
	// (e.g., "patch|minor|major"), empty when discovered via recipe scan.
	Hint string `json:"hint,omitempty"`
}

// Options splits a pipe-delimited hint into its individual values.
// Returns nil when the variable carries no hint.
func (v RequiredVar) Options() []string {
	if v.Hint == "" {
		return nil
	}
	return strings.Split(v.Hint, "|")
}

// Target is a single Makefile target with its extracted metadata.
type Target struct {
	// Name is the target name as written in the Makefile.
	Name string `json:"name"`
	// Dependencies are the whitespace-split tokens after the header colon,
	// in source order, duplicates preserved as written.
	Dependencies []string `json:"dependencies,omitempty"`
	// Description is derived from an inline ## comment or the preceding
	// comment block, empty when neither exists.
	Description string `json:"description,omitempty"`
	// File is the path of the Makefile this target was found in.
	File string `json:"file"`
	// Line is the 1-based line number of the target header.
	Line int `json:"line"`
	// RequiredVars are the variables a caller must provide, in first-seen
	// order with comment hints preceding recipe-scanned names.
	RequiredVars []RequiredVar `json:"required_vars,omitempty"`
}

// IsPattern reports whether the target is a pattern rule (name contains %).
func (t Target) IsPattern() bool {
	return strings.Contains(t.Name, "%")
}

// IsPrivate reports whether the target is private by convention
// (name starts with an underscore).
func (t Target) IsPrivate() bool {
	return strings.HasPrefix(t.Name, "_")
}

// HasRequiredVars reports whether any required variables were discovered.
func (t Target) HasRequiredVars() bool {
	return len(t.RequiredVars) > 0
}

// String renders the target for plain display.
func (t Target) String() string {
	if t.Description != "" {
		return fmt.Sprintf("%s - %s", t.Name, t.Description)
	}
	return t.Name
}

// Clone returns a deep copy so callers can never mutate cached records.
func (t Target) Clone() Target {
	out := t
	if t.Dependencies != nil {
		out.Dependencies = append([]string(nil), t.Dependencies...)
	}
	if t.RequiredVars != nil {
		out.RequiredVars = append([]RequiredVar(nil), t.RequiredVars...)
	}
	return out
}

// CloneAll deep-copies a slice of targets.
func CloneAll(targets []Target) []Target {
	if targets == nil {
		return nil
	}
	out := make([]Target, len(targets))
	for i, t := range targets {
		out[i] = t.Clone()
	}
	return out
}

// FilterOptions controls which targets are visible to callers.
// The zero value hides private targets and pattern rules.
type FilterOptions struct {
	// IncludePrivate keeps targets whose name starts with an underscore.
	IncludePrivate bool
	// IncludePatterns keeps pattern rules such as "%.o".
	IncludePatterns bool
}

// Filter applies visibility options to already-extracted targets.
// It is a pure transform: records are never re-parsed, so repeated calls
// with different options are cheap and deterministic.
func Filter(targets []Target, opts FilterOptions) []Target {
	out := make([]Target, 0, len(targets))
	for _, t := range targets {
		if t.IsPrivate() && !opts.IncludePrivate {
			continue
		}
		if t.IsPattern() && !opts.IncludePatterns {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortByName orders targets alphabetically in place.
func SortByName(targets []Target) {
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Name < targets[j].Name
	})
}
