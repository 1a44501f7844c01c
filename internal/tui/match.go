package tui

import (
	"strings"

	"github.com/maki-build/maki/pkg/task"
)

// matchTargets filters targets by query and returns indices in rank
// order. Prefix matches rank above subsequence matches; within a tier
// the original (sorted) order is kept.
func matchTargets(targets []task.Target, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		all := make([]int, len(targets))
		for i := range targets {
			all[i] = i
		}
		return all
	}

	var prefix, fuzzy []int
	for i, t := range targets {
		name := strings.ToLower(t.Name)
		switch {
		case strings.HasPrefix(name, query):
			prefix = append(prefix, i)
		case isSubsequence(query, name):
			fuzzy = append(fuzzy, i)
		}
	}
	return append(prefix, fuzzy...)
}

// isSubsequence reports whether every rune of needle appears in
// haystack in order, not necessarily contiguously.
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	n := []rune(needle)
	j := 0
	for _, r := range haystack {
		if r == n[j] {
			j++
			if j == len(n) {
				return true
			}
		}
	}
	return false
}
