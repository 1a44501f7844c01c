package parser

import "strings"

// describeTarget returns the description for the target header at idx, or
// "" when no comment applies.
//
// An inline "##" marker on the header line wins outright. Otherwise the
// contiguous run of comment lines immediately above the header is joined
// top to bottom; the first blank, assignment, recipe, or unrecognized
// line ends the run.
func describeTarget(lines []SourceLine, idx int) string {
	header := lines[idx]

	if pos := strings.Index(header.Raw, "##"); pos >= 0 {
		if desc := strings.TrimSpace(header.Raw[pos+2:]); desc != "" {
			return desc
		}
	}

	var run []string
	for i := idx - 1; i >= 0; i-- {
		if lines[i].Kind != LineComment {
			break
		}
		if text := commentText(lines[i].Raw); text != "" {
			run = append(run, text)
		}
	}

	if len(run) == 0 {
		return ""
	}

	// Collected bottom-up, joined in source order.
	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}
	return strings.Join(run, " ")
}

// commentText strips the leading hash markers and surrounding whitespace
// from a comment line.
func commentText(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(s)
}
