package textutil_test

import (
	"testing"

	"appxify/internal/textutil"
)

func TestFirstNonEmptyHonorsOrder(t *testing.T) {
	if got := textutil.FirstNonEmpty("", "second", "third"); got != "second" {
		t.Fatalf("got %q want %q", got, "second")
	}
	if got := textutil.FirstNonEmpty("first", "second"); got != "first" {
		t.Fatalf("got %q want %q", got, "first")
	}
}

func TestFirstNonEmptySkipsWhitespace(t *testing.T) {
	if got := textutil.FirstNonEmpty("   ", "\t", "fallback"); got != "fallback" {
		t.Fatalf("got %q want %q", got, "fallback")
	}
}

func TestFirstNonEmptyAllEmpty(t *testing.T) {
	if got := textutil.FirstNonEmpty("", "  "); got != "" {
		t.Fatalf("got %q want empty", got)
	}
}
