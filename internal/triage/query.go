package triage

import "github.com/samber/lo"

// FilterByQuery keeps messages whose subject, sender or snippet contains
// query, ignoring case. A blank query returns messages unchanged.
func FilterByQuery(messages []EmailMessage, query string) []EmailMessage {
	q := normalizeQuery(query)
	if q == "" {
		return messages
	}
	return lo.Filter(messages, func(m EmailMessage, _ int) bool {
		return MatchesQuery(m, q)
	})
}

// MatchesQuery reports whether a message matches an already lowercased query.
func MatchesQuery(m EmailMessage, lowerQuery string) bool {
	return containsLower(m.Subject, lowerQuery) ||
		containsLower(m.From, lowerQuery) ||
		containsLower(m.Snippet, lowerQuery)
}
