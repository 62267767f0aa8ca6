// Package urlkit decomposes URL strings into the pieces the conversion
// pipeline cares about: scheme, hostname, registrable domain, and path.
// Callers detect an unparseable URL by an empty DomainName.
package urlkit

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Components holds the decomposed parts of a URL. Fields are empty when the
// corresponding part is absent or the URL cannot be decomposed.
type Components struct {
	Scheme     string
	HostName   string
	DomainName string
	PathName   string
}

// Parse splits raw into scheme, hostname, registrable domain, and path.
// Scheme-less inputs and the wildcard scheme "*" are tolerated; the hostname
// is lowercased and stripped of userinfo and port. The registrable domain
// falls back to the hostname itself for IP literals, single-label hosts, and
// bare public suffixes.
func Parse(raw string) Components {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Components{}
	}

	scheme := ""
	rest := raw
	if i := strings.Index(rest, "://"); i >= 0 {
		scheme = strings.ToLower(rest[:i])
		rest = rest[i+3:]
	}

	host := rest
	path := ""
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		host = rest[:j]
		if rest[j] == '/' {
			path = rest[j:]
			if k := strings.IndexAny(path, "?#"); k >= 0 {
				path = path[:k]
			}
		}
	}

	host = normalizeHost(host)
	if host == "" {
		return Components{Scheme: scheme, PathName: path}
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domain = host
	}

	return Components{
		Scheme:     scheme,
		HostName:   host,
		DomainName: domain,
		PathName:   path,
	}
}

func normalizeHost(host string) string {
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	host = strings.ToLower(strings.TrimSpace(host))

	if strings.HasPrefix(host, "[") {
		// Bracketed IPv6 literal, optionally with a port.
		end := strings.Index(host, "]")
		if end < 0 {
			return ""
		}
		if ip := net.ParseIP(host[1:end]); ip != nil {
			return host[1:end]
		}
		return ""
	}

	if colon := strings.LastIndex(host, ":"); colon >= 0 {
		host = host[:colon]
	}
	if !validHost(host) {
		return ""
	}
	return host
}

func validHost(host string) bool {
	if host == "" || strings.Trim(host, ".-") == "" {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}
