package textutil

import "strings"

// FirstNonEmpty returns the first candidate whose trimmed value is non-empty.
// Candidates are evaluated in order, so callers encode field precedence by
// argument position. Returns "" when every candidate is empty.
func FirstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}
