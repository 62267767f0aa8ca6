package access_test

import (
	"errors"
	"testing"

	"appxify/internal/access"
	"appxify/internal/converr"
)

func TestExpandURLInsecureSchemesCoverBothOrigins(t *testing.T) {
	for _, raw := range []string{"http://example.com/", "*://example.com/", "example.com"} {
		rules, err := access.ExpandURL(raw)
		if err != nil {
			t.Fatalf("ExpandURL(%q): %v", raw, err)
		}
		want := []string{
			"http://example.com/",
			"http://*.example.com/",
			"https://example.com/",
			"https://*.example.com/",
		}
		if len(rules) != len(want) {
			t.Fatalf("ExpandURL(%q): got %d rules", raw, len(rules))
		}
		for i, r := range rules {
			if r.URL != want[i] {
				t.Fatalf("ExpandURL(%q)[%d]: got %q want %q", raw, i, r.URL, want[i])
			}
			if r.APIAccess != "none" {
				t.Fatalf("ExpandURL(%q)[%d]: apiAccess %q", raw, i, r.APIAccess)
			}
		}
	}
}

func TestExpandURLSecureSchemeStaysSecure(t *testing.T) {
	rules, err := access.ExpandURL("https://shop.example.com/cart")
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].URL != "https://shop.example.com/" || rules[1].URL != "https://*.shop.example.com/" {
		t.Fatalf("unexpected rules: %+v", rules)
	}
}

func TestExpandURLRejectsOtherSchemes(t *testing.T) {
	_, err := access.ExpandURL("ftp://example.com/")
	var cerr *converr.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected catalog error, got %v", err)
	}
	if cerr.Code != converr.CodeUnsupportedProtocolInAcur {
		t.Fatalf("got code %d want %d", cerr.Code, converr.CodeUnsupportedProtocolInAcur)
	}
	if len(cerr.Params) != 1 || cerr.Params[0] != "ftp" {
		t.Fatalf("unexpected params: %v", cerr.Params)
	}
}

func TestExpandURLRejectsUnparseableDomain(t *testing.T) {
	_, err := access.ExpandURL("http://")
	var cerr *converr.Error
	if !errors.As(err, &cerr) || cerr.Code != converr.CodeDomainParsingFailed {
		t.Fatalf("expected DomainParsingFailed, got %v", err)
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []access.Rule{
		{URL: "https://a/", APIAccess: "none"},
		{URL: "https://b/", APIAccess: "all"},
		{URL: "https://a/", APIAccess: "none"},
		{URL: "https://a/", APIAccess: "all"},
	}
	got := access.Dedupe(in)
	if len(got) != 3 {
		t.Fatalf("got %d rules, want 3", len(got))
	}
	if got[0].URL != "https://a/" || got[1].URL != "https://b/" || got[2].APIAccess != "all" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestResolveScopeDefaultsToStartOrigin(t *testing.T) {
	got, err := access.ResolveScope("https://example.com/index.html", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveScopeRelativePathWithWildcard(t *testing.T) {
	got, err := access.ResolveScope("https://example.com/app/index.html", "/app/*")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/app" {
		t.Fatalf("got %q want %q", got, "https://example.com/app")
	}
}

func TestResolveScopeAbsoluteScopeWinsVerbatim(t *testing.T) {
	got, err := access.ResolveScope("https://example.com/", "https://other.example.org/area/*")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://other.example.org/area" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveScopeRelativeWithoutLeadingSlash(t *testing.T) {
	got, err := access.ResolveScope("http://example.com/start", "app")
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://example.com/app" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveScopeUnparseableStartURL(t *testing.T) {
	_, err := access.ResolveScope("not a url at all", "")
	var cerr *converr.Error
	if !errors.As(err, &cerr) || cerr.Code != converr.CodeDomainParsingFailed {
		t.Fatalf("expected DomainParsingFailed, got %v", err)
	}
}

func TestMergeEmitsBaseRuleLastExactlyOnce(t *testing.T) {
	rules := []access.Rule{
		{URL: "https://cdn.example.com/", APIAccess: "none"},
		{URL: "https://example.com/app/*", APIAccess: "all"},
		{URL: "*"},
		{URL: "https://api.example.com/"},
	}
	got := access.Merge(rules, "https://example.com/app")

	if len(got) != 3 {
		t.Fatalf("got %d rules: %+v", len(got), got)
	}
	last := got[len(got)-1]
	if last.URL != "https://example.com/app" {
		t.Fatalf("base rule not last: %+v", got)
	}
	if last.APIAccess != "all" {
		t.Fatalf("base rule did not absorb apiAccess: %+v", last)
	}
	if got[0].URL != "https://cdn.example.com/" || got[1].URL != "https://api.example.com/" {
		t.Fatalf("include order wrong: %+v", got)
	}
	if got[1].APIAccess != "none" {
		t.Fatalf("missing default apiAccess: %+v", got[1])
	}
	for _, r := range got {
		if r.URL == "*" {
			t.Fatalf("wildcard rule leaked: %+v", got)
		}
	}
}

func TestMergeBaseComparisonIsCaseInsensitive(t *testing.T) {
	rules := []access.Rule{{URL: "HTTPS://EXAMPLE.COM/APP", APIAccess: "allowForWebOnly"}}
	got := access.Merge(rules, "https://example.com/app")
	if len(got) != 1 {
		t.Fatalf("got %d rules: %+v", len(got), got)
	}
	if got[0].APIAccess != "allowForWebOnly" {
		t.Fatalf("unexpected base access: %+v", got[0])
	}
}

func TestMergeWithNoExtraRules(t *testing.T) {
	got := access.Merge(nil, "https://example.com/")
	if len(got) != 1 || got[0].URL != "https://example.com/" || got[0].APIAccess != "none" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
