package models

import (
	"errors"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// ParseProblemURL parses raw as an absolute URL with a scheme and a host
func ParseProblemURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("missing scheme or host")
	}
	return u, nil
}

// normalizedPath collapses the first "//" and drops one trailing slash,
// so "/contest//1/problem/A/" and "/contest/1/problem/A" compare equal
func normalizedPath(u *url.URL) string {
	p := strings.Replace(u.Path, "//", "/", 1)
	return strings.TrimSuffix(p, "/")
}

// EquivalentURL reports whether a and b name the same problem page.
// Scheme, query and fragment are ignored; the host is compared case-insensitively.
func EquivalentURL(a, b string) bool {
	ua, err := ParseProblemURL(a)
	if err != nil {
		return false
	}
	ub, err := ParseProblemURL(b)
	if err != nil {
		return false
	}
	return strings.EqualFold(ua.Host, ub.Host) && normalizedPath(ua) == normalizedPath(ub)
}

// Lookup finds the entry whose URL is equivalent to raw.
// An exact key match wins; otherwise keys are tried in sorted order.
func (s Snapshot) Lookup(raw string) (Entry, bool) {
	if e, ok := s[raw]; ok {
		return e, true
	}
	if _, err := ParseProblemURL(raw); err != nil {
		return Entry{}, false
	}
	for _, key := range slices.Sorted(maps.Keys(s)) {
		if EquivalentURL(key, raw) {
			return s[key], true
		}
	}
	return Entry{}, false
}
