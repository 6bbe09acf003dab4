// Package serp turns raw search-engine result markup into normalized profile
// link records. Filtering is strict: only people-profile paths on the target
// site survive, everything else on the page is noise.
package serp

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hyperifyio/profilescout/internal/query"
)

// Item is one raw link extracted from a provider's result markup, already
// redirect-decoded and canonicalized.
type Item struct {
	URL     string
	Title   string
	Snippet string
	Engine  string
}

// allowedPrefixes identify people-profile paths on the target site.
var allowedPrefixes = []string{"/in/", "/pub/"}

// excludedSegments reject company, job, post and similar non-profile pages.
// Checked against every path segment so nesting under /in/ does not slip
// through.
var excludedSegments = map[string]bool{
	"company": true,
	"jobs":    true,
	"posts":   true,
	"feed":    true,
	"school":  true,
	"groups":  true,
	"pulse":   true,
}

// DecodeRedirect unwraps engine redirect links that carry the destination in
// a uddg-style query parameter. Links without the parameter pass through
// unchanged.
func DecodeRedirect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	dest := u.Query().Get("uddg")
	if dest == "" {
		return raw
	}
	if _, err := url.Parse(dest); err != nil {
		return raw
	}
	return dest
}

// Canonicalize normalizes a destination URL for comparison and dedup:
// https scheme when missing, lowercase host, query and fragment dropped
// (profile URLs carry no meaningful query, only tracking), trailing slash
// trimmed.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}

// IsProfileURL reports whether a canonical URL points at a people-profile
// page on the target site.
func IsProfileURL(canonical string) bool {
	u, err := url.Parse(canonical)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != query.TargetHost && !strings.HasSuffix(host, "."+query.TargetHost) {
		return false
	}
	path := strings.ToLower(u.Path)
	allowed := false
	for _, p := range allowedPrefixes {
		if strings.HasPrefix(path, p) && len(path) > len(p) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if excludedSegments[seg] {
			return false
		}
	}
	return true
}

var titleCaser = cases.Title(language.Und)

// labelFromURL derives a readable display name from a profile URL slug,
// e.g. /in/markus-weber-bmw -> "Markus Weber Bmw". Used when the result
// anchor carries no visible text.
func labelFromURL(canonical string) string {
	u, err := url.Parse(canonical)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 {
		return ""
	}
	slug := strings.NewReplacer("-", " ", "_", " ").Replace(segs[1])
	return titleCaser.String(strings.Join(strings.Fields(slug), " "))
}
