package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/maki-build/maki/pkg/task"
)

// Version tags the parse grammar. Cache entries written by a different
// version are ignored, so bump this whenever classification, attribution,
// or extraction behavior changes.
const Version = "1"

// Parser turns raw Makefile text into target records. The visibility
// filters (private targets, pattern rules) are applied by task.Filter
// after the fact, never here, so one parse serves any filter
// configuration.
type Parser struct {
	excluded map[string]bool
}

// NewParser creates a parser. Any extra names are excluded from
// required-variable extraction in addition to DefaultExcludedVars.
func NewParser(extraExcluded ...string) *Parser {
	excluded := make(map[string]bool, len(DefaultExcludedVars)+len(extraExcluded))
	for _, name := range DefaultExcludedVars {
		excluded[name] = true
	}
	for _, name := range extraExcluded {
		excluded[name] = true
	}
	return &Parser{excluded: excluded}
}

// ParseFile reads and parses a single Makefile.
func (p *Parser) ParseFile(path string) ([]task.Target, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read makefile %s: %w", path, err)
	}
	return p.ParseContent(path, string(content)), nil
}

// ParseContent parses Makefile text. It never fails: malformed input
// degrades to best-effort classification, and a file with no recognizable
// targets yields an empty result. Duplicate target names within one file
// keep the first occurrence.
func (p *Parser) ParseContent(path, content string) []task.Target {
	lines := Classify(content)

	var targets []task.Target
	seen := make(map[string]bool)
	recipes := make(map[int][]string)
	// Index into targets of the record owning subsequent recipe lines,
	// or -1 while inside a skipped duplicate's body.
	current := -1

	for i, line := range lines {
		switch line.Kind {
		case LineTargetHeader:
			if seen[line.Name] {
				current = -1
				continue
			}
			seen[line.Name] = true

			targets = append(targets, task.Target{
				Name:         line.Name,
				Dependencies: splitDependencies(line.Rest),
				Description:  describeTarget(lines, i),
				File:         path,
				Line:         line.Num,
			})
			current = len(targets) - 1

		case LineRecipe:
			if current >= 0 {
				recipes[current] = append(recipes[current], strings.TrimPrefix(line.Raw, "\t"))
			}
		}
	}

	for i := range targets {
		targets[i].RequiredVars = extractRequiredVars(targets[i].Description, recipes[i], p.excluded)
	}

	return targets
}

// splitDependencies tokenizes the text after the header colon. Order and
// duplicates are preserved as written.
func splitDependencies(rest string) []string {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
