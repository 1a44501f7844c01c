// Package parser provides syntactic Makefile target discovery. It
// classifies lines, attributes comment descriptions to targets, and
// extracts required-variable hints from comments and recipe bodies.
// It never evaluates variable expansion or resolves include directives.
package parser

import (
	"bufio"
	"regexp"
	"strings"
)

// LineKind classifies a single physical line of a Makefile.
type LineKind int

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = iota
	// LineComment starts with # (possibly indented).
	LineComment
	// LineTargetHeader is a rule header such as "build: dep1 dep2".
	LineTargetHeader
	// LineAssignment is a variable assignment, including the
	// target-scoped form "target: VAR := value".
	LineAssignment
	// LineRecipe is a tab-prefixed command belonging to the nearest
	// preceding target header.
	LineRecipe
	// LineOther is unrecognized text; downstream stages ignore it.
	LineOther
)

// SourceLine is one classified line. It only lives for the duration of a
// single parse pass.
type SourceLine struct {
	// Num is the 1-based line number.
	Num int
	// Raw is the line text without the trailing newline.
	Raw string
	// Kind is the classification result.
	Kind LineKind

	// DoubleHash is set on comment lines whose marker is ## rather than #.
	DoubleHash bool
	// Name is the target name, set only on target headers.
	Name string
	// Rest is the text after the header colon with any trailing comment
	// stripped, set only on target headers.
	Rest string
	// Pattern is set on target headers whose name contains %.
	Pattern bool
}

// targetNamePattern matches a rule header name. The same character set the
// original make grammar allows for file-ish names, including % for
// pattern rules and / for nested targets like docker/build.
var targetNamePattern = regexp.MustCompile(`^([A-Za-z0-9._/%-]+)\s*:(.*)$`)

// scopedAssignPattern matches "VAR := value" style text after a header
// colon, which makes the whole line a target-scoped assignment.
var scopedAssignPattern = regexp.MustCompile(`^[A-Za-z0-9_]+\s*(:=|\?=|\+=|=)`)

// Classify scans the full text of one Makefile and returns every line
// classified in file order. It never fails: unrecognized text degrades to
// LineOther and is ignored by downstream stages.
func Classify(content string) []SourceLine {
	var lines []SourceLine
	prevKind := LineBlank

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	num := 0
	for scanner.Scan() {
		num++
		raw := scanner.Text()
		line := classifyLine(num, raw, prevKind)
		prevKind = line.Kind
		lines = append(lines, line)
	}

	return lines
}

func classifyLine(num int, raw string, prevKind LineKind) SourceLine {
	line := SourceLine{Num: num, Raw: raw}
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		line.Kind = LineBlank

	case strings.HasPrefix(trimmed, "#"):
		line.Kind = LineComment
		line.DoubleHash = strings.HasPrefix(trimmed, "##")

	case strings.HasPrefix(raw, "\t") && (prevKind == LineTargetHeader || prevKind == LineRecipe):
		line.Kind = LineRecipe

	case isAssignment(trimmed) || isScopedAssignment(trimmed):
		line.Kind = LineAssignment

	default:
		if m := targetNamePattern.FindStringSubmatch(trimmed); m != nil {
			line.Kind = LineTargetHeader
			line.Name = m[1]
			line.Pattern = strings.Contains(m[1], "%")
			// Double-colon rules leave a leading colon in the remainder.
			rest := strings.TrimPrefix(m[2], ":")
			if i := strings.Index(rest, "#"); i >= 0 {
				rest = rest[:i]
			}
			line.Rest = strings.TrimSpace(rest)
		} else {
			line.Kind = LineOther
		}
	}

	return line
}

// isAssignment reports whether the trimmed line is a simple variable
// assignment (VAR = v, VAR := v, VAR ?= v, VAR += v). A colon before the
// operator means the line is a rule header instead.
func isAssignment(s string) bool {
	for _, op := range []string{":=", "?=", "+="} {
		if i := strings.Index(s, op); i >= 0 && !strings.Contains(s[:i], ":") {
			return true
		}
	}

	// Plain "=", excluding the compound operators and "==".
	if i := strings.Index(s, "="); i > 0 {
		prev := s[i-1]
		next := byte(0)
		if i+1 < len(s) {
			next = s[i+1]
		}
		if prev != ':' && prev != '?' && prev != '+' && next != '=' && !strings.Contains(s[:i], ":") {
			return true
		}
	}

	return false
}

// isScopedAssignment reports whether the trimmed line is a target-scoped
// variable assignment such as "build: CC := clang". These classify as
// assignments, not target headers: the assignment operator appears after
// the first colon.
func isScopedAssignment(s string) bool {
	i := strings.Index(s, ":")
	if i < 0 {
		return false
	}
	rest := strings.TrimSpace(s[i+1:])
	// Guard against ":=" itself: the compound operator belongs to the
	// simple-assignment check above.
	if strings.HasPrefix(rest, "=") {
		return false
	}
	return scopedAssignPattern.MatchString(rest)
}
