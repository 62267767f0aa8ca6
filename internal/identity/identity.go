// Package identity normalizes arbitrary display names into tokens legal as
// package-identity application ids.
package identity

import "regexp"

// Rule is a single rewrite applied during sanitization. Rules are data so
// the rewrite set can be inspected and tested independently of the loop
// that drives it.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// rules are applied in order, repeatedly, until the string stops shrinking.
// Each rule strictly removes characters, so the loop always converges.
var rules = []Rule{
	{regexp.MustCompile(`[^A-Za-z0-9.]`), ""}, // only letters, digits, dots survive
	{regexp.MustCompile(`^[0-9]`), ""},        // ids cannot start with a digit
	{regexp.MustCompile(`^\.`), ""},           // or a dot
	{regexp.MustCompile(`\.[0-9]`), "."},      // no digit directly after a dot
	{regexp.MustCompile(`\.\.`), "."},         // collapse dot runs
	{regexp.MustCompile(`\.$`), ""},           // no trailing dot
}

// Rules returns the ordered rewrite set.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Sanitize rewrites name to a fixed point of the rule set. An empty input
// converges immediately to ""; rejecting an empty result is the caller's
// concern.
func Sanitize(name string) string {
	current := name
	for {
		next := current
		for _, r := range rules {
			next = r.Pattern.ReplaceAllString(next, r.Replacement)
		}
		if len(next) >= len(current) {
			return next
		}
		current = next
	}
}
