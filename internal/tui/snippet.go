package tui

import (
	"os"
	"strings"
)

// snippetFor returns the section of the makefile starting at the
// target's header line and running through its recipe, with trailing
// blank lines trimmed. An empty string is returned when the file
// cannot be read or the line number is out of range.
func snippetFor(path string, line int) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(content), "\n")
	start := line - 1
	if start < 0 || start >= len(lines) {
		return ""
	}

	end := start + 1
	for end < len(lines) {
		l := lines[end]
		if strings.HasPrefix(l, "\t") || strings.TrimSpace(l) == "" {
			end++
			continue
		}
		break
	}

	section := lines[start:end]
	for len(section) > 1 && strings.TrimSpace(section[len(section)-1]) == "" {
		section = section[:len(section)-1]
	}
	return strings.Join(section, "\n")
}
