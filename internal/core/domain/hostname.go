package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Domain is a normalized hostname held by a threat feed.
// A Domain produced by NormalizeDomain is canonical: all subsequent
// comparisons are exact matches on the normalized form.
type Domain string

// hostnamePattern is the accepted hostname grammar: one or more
// dot-separated labels followed by an alphabetic TLD of length >= 2.
var hostnamePattern = regexp.MustCompile(`^(?:[a-z0-9-]+\.)+[a-z]{2,}$`)

// NormalizeDomain canonicalizes a raw domain string: it trims
// surrounding whitespace, lowercases, and strips any scheme prefix,
// userinfo, port, path, query or fragment. The remainder must match the
// hostname grammar or ErrInvalidDomain is returned.
//
// Normalization is idempotent: feeding a normalized Domain back through
// returns it unchanged.
func NormalizeDomain(raw string) (Domain, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidDomain)
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	if !hostnamePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}
	return Domain(s), nil
}

// String returns the domain as a plain string.
func (d Domain) String() string {
	return string(d)
}
