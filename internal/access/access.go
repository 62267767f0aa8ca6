// Package access derives the ordered content-URI access rules (the origin
// whitelist) a converted application grants to its web content.
package access

import (
	"strings"

	"appxify/internal/converr"
	"appxify/internal/urlkit"
)

// DefaultAPIAccess is the access level assumed for rules that do not
// specify one.
const DefaultAPIAccess = "none"

// Rule is one whitelist entry: an origin pattern and the native API access
// level granted to pages matching it.
type Rule struct {
	URL       string `json:"url"`
	APIAccess string `json:"apiAccess,omitempty"`
}

// ExpandURL derives the whitelist entries implied by one declared URL.
// Scheme-less, http, and wildcard URLs cover both http and https origins
// plus their subdomains; https URLs cover only secure origins. Any other
// scheme is rejected.
func ExpandURL(raw string) ([]Rule, error) {
	parts := urlkit.Parse(raw)
	if parts.DomainName == "" {
		return nil, converr.DomainParsingFailed(raw)
	}

	host := parts.HostName
	switch parts.Scheme {
	case "", "http", "*":
		return []Rule{
			{URL: "http://" + host + "/", APIAccess: DefaultAPIAccess},
			{URL: "http://*." + host + "/", APIAccess: DefaultAPIAccess},
			{URL: "https://" + host + "/", APIAccess: DefaultAPIAccess},
			{URL: "https://*." + host + "/", APIAccess: DefaultAPIAccess},
		}, nil
	case "https":
		return []Rule{
			{URL: "https://" + host + "/", APIAccess: DefaultAPIAccess},
			{URL: "https://*." + host + "/", APIAccess: DefaultAPIAccess},
		}, nil
	default:
		return nil, converr.UnsupportedProtocolInAcur(parts.Scheme)
	}
}

// Dedupe removes later duplicates of the (url, apiAccess) pair, preserving
// first-occurrence order. Comparison is case-sensitive on both fields.
func Dedupe(rules []Rule) []Rule {
	type key struct {
		url    string
		access string
	}
	seen := make(map[key]struct{}, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		k := key{url: r.URL, access: r.APIAccess}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ResolveScope computes the base scope pattern from the start URL and the
// manifest's navigation scope. An absolute scope wins verbatim; a relative
// scope is treated as a path under the start URL's origin. A trailing
// wildcard segment is trimmed from the result.
func ResolveScope(startURL, scope string) (string, error) {
	start := urlkit.Parse(startURL)
	if start.DomainName == "" {
		return "", converr.DomainParsingFailed(startURL)
	}
	scheme := start.Scheme
	if scheme == "" {
		scheme = "http"
	}

	pattern := scheme + "://" + start.HostName + "/"
	if trimmed := strings.TrimSpace(scope); trimmed != "" {
		parsed := urlkit.Parse(trimmed)
		if parsed.Scheme != "" && parsed.HostName != "" {
			pattern = trimmed
		} else {
			if !strings.HasPrefix(trimmed, "/") {
				trimmed = "/" + trimmed
			}
			pattern = scheme + "://" + start.HostName + trimmed
		}
	}
	return trimWildcard(pattern), nil
}

// Merge produces the final ordered rule list: every non-wildcard rule in
// first-seen order, then exactly one rule for the base pattern. Rules whose
// URL matches the base pattern donate their access level to the base rule
// instead of being emitted twice.
func Merge(rules []Rule, basePattern string) []Rule {
	baseAccess := DefaultAPIAccess
	out := make([]Rule, 0, len(rules)+1)
	for _, r := range rules {
		if r.URL == "*" {
			continue
		}
		url := trimWildcard(r.URL)
		if strings.EqualFold(url, basePattern) {
			if r.APIAccess != "" {
				baseAccess = r.APIAccess
			}
			continue
		}
		apiAccess := r.APIAccess
		if apiAccess == "" {
			apiAccess = DefaultAPIAccess
		}
		out = append(out, Rule{URL: url, APIAccess: apiAccess})
	}
	return append(out, Rule{URL: basePattern, APIAccess: baseAccess})
}

// trimWildcard strips a trailing wildcard path segment so patterns compare
// and render consistently. "https://x/app/*" becomes "https://x/app".
func trimWildcard(pattern string) string {
	if strings.HasSuffix(pattern, "/*") {
		return strings.TrimSuffix(pattern, "/*")
	}
	return strings.TrimSuffix(pattern, "*")
}
