package identity_test

import (
	"testing"

	"appxify/internal/identity"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3.corp..name.", "corp.name"},
		{"My App", "MyApp"},
		{"app", "app"},
		{"7-Zip Manager", "ZipManager"},
		{"...", ""},
		{"", ""},
		{"a.1b", "a.b"},
		{"héllo wörld", "hllowrld"},
		{"123", ""},
		{"name.", "name"},
	}
	for _, tc := range cases {
		if got := identity.Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{"3.corp..name.", "My App 2.0", "..9.x..", "plain", ""}
	for _, in := range inputs {
		once := identity.Sanitize(in)
		twice := identity.Sanitize(once)
		if once != twice {
			t.Fatalf("Sanitize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestRulesExposedAsData(t *testing.T) {
	rules := identity.Rules()
	if len(rules) != 6 {
		t.Fatalf("unexpected rule count: %d", len(rules))
	}
	// First rule keeps only identity-legal characters.
	if got := rules[0].Pattern.ReplaceAllString("a-b_c", rules[0].Replacement); got != "abc" {
		t.Fatalf("first rule: got %q", got)
	}
}
