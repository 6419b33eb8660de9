// Package validation checks untrusted values before they reach a page.
package validation

import (
	"net/url"
	"strings"
)

// IsWebURL reports whether s is an absolute http or https URL with a host.
// javascript:, data: and other schemes are rejected.
func IsWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// LinkableURL returns the trimmed URL when it is safe to render as a link,
// or "" when the bill card should be shown without one.
func LinkableURL(s string) string {
	s = strings.TrimSpace(s)
	if !IsWebURL(s) {
		return ""
	}
	return s
}
