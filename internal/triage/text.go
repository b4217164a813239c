package triage

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower returns s lowercased. A cases.Caser is stateful, so one is built
// per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// containsLower reports whether needle occurs in the lowercased haystack.
// needle must already be lowercased.
func containsLower(haystack, lowerNeedle string) bool {
	if lowerNeedle == "" {
		return true
	}
	return strings.Contains(lower(haystack), lowerNeedle)
}

// normalizeQuery trims and lowercases a user supplied search string.
func normalizeQuery(q string) string {
	return lower(strings.TrimSpace(q))
}
