package app

import (
	"regexp"
	"strings"
)

// The ledger's multi-line statements flatten to well under this, so
// truncation only ever hits hand-run bulk statements.
const maxTracedQueryLength = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a statement onto one line so the indented
// SQL in the repositories stays readable in trace viewers.
func formatDBQueryForTrace(query string) string {
	flat := sqlWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}

	return flat
}
