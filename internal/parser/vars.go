package parser

import (
	"regexp"
	"strings"

	"github.com/maki-build/maki/pkg/task"
)

// DefaultExcludedVars are variable names never reported as required.
// Make's automatic variables ($@, $<, $^, $*, $+, $?) are excluded by
// construction since they are not identifiers; this list covers the
// conventional toolchain variables that makefiles set themselves. It is
// a static configuration list, extended via NewParser, never inferred.
var DefaultExcludedVars = []string{
	"CC", "CFLAGS", "LDFLAGS", "CXX", "CXXFLAGS", "AR", "RM",
}

// hintPattern matches enumerated variable hints embedded in comment text,
// e.g. "V=patch|minor|major": an uppercase-led identifier, "=", and a
// pipe-delimited option list.
var hintPattern = regexp.MustCompile(`\b([A-Z][A-Z0-9_]*)=(\S+)`)

// refPattern matches $(NAME) and ${NAME} substitutions in recipe text.
var refPattern = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_]*)\)|\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// extractRequiredVars merges the two variable-discovery strategies:
// enumerated hints found in the attributed description, then names
// referenced in the recipe body. Insertion order is first-seen order with
// comment hints leading; later duplicates are dropped even when their
// hints differ, a deliberate tie-break rather than an error.
func extractRequiredVars(description string, recipes []string, excluded map[string]bool) []task.RequiredVar {
	var out []task.RequiredVar
	seen := make(map[string]bool)

	for _, m := range hintPattern.FindAllStringSubmatch(description, -1) {
		name, hint := m[1], m[2]
		if seen[name] || excluded[name] || !validHint(hint) {
			continue
		}
		seen[name] = true
		out = append(out, task.RequiredVar{Name: name, Hint: hint})
	}

	for _, recipe := range recipes {
		for _, m := range refPattern.FindAllStringSubmatch(recipe, -1) {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			if seen[name] || excluded[name] {
				continue
			}
			seen[name] = true
			out = append(out, task.RequiredVar{Name: name})
		}
	}

	return out
}

// validHint reports whether a hint candidate is a usable option list:
// every pipe-separated segment must be non-empty.
func validHint(hint string) bool {
	for _, opt := range strings.Split(hint, "|") {
		if opt == "" {
			return false
		}
	}
	return true
}
