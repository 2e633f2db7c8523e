package crawler

import (
	"net/url"
	"path/filepath"
	"strings"
)

// LinkFilter decides which discovered links are offered to the frontier.
// The zero value accepts every http and https link.
type LinkFilter struct {
	// allowedHosts restricts links to these hosts when non-empty.
	// Hosts are compared case-insensitively.
	allowedHosts map[string]struct{}

	// ignorePatterns are glob patterns on the URL path that are skipped.
	ignorePatterns []string

	// followPatterns, when set, are the only URL paths that are followed.
	followPatterns []string

	// hostPatterns overrides the patterns above for individual hosts.
	hostPatterns PatternFunc
}

// PatternFunc returns the ignore and follow patterns for host.
// Nil slices mean the filter-wide patterns apply.
type PatternFunc func(host string) (ignore, follow []string)

// FilterOption configures a LinkFilter.
type FilterOption func(*LinkFilter)

// WithAllowedHosts restricts the filter to links on the given hosts.
func WithAllowedHosts(hosts ...string) FilterOption {
	return func(f *LinkFilter) {
		if f.allowedHosts == nil {
			f.allowedHosts = make(map[string]struct{}, len(hosts))
		}
		for _, h := range hosts {
			f.allowedHosts[strings.ToLower(h)] = struct{}{}
		}
	}
}

// WithIgnorePatterns sets URL path patterns to skip.
// Patterns use glob syntax, e.g. "/admin/*" or "*.pdf".
func WithIgnorePatterns(patterns []string) FilterOption {
	return func(f *LinkFilter) {
		f.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets URL path patterns to follow.
// If set, only URLs whose path matches at least one pattern are followed.
func WithFollowPatterns(patterns []string) FilterOption {
	return func(f *LinkFilter) {
		f.followPatterns = patterns
	}
}

// WithHostPatterns sets a per-host pattern lookup.
func WithHostPatterns(fn PatternFunc) FilterOption {
	return func(f *LinkFilter) {
		f.hostPatterns = fn
	}
}

// NewLinkFilter creates a LinkFilter with the given options.
func NewLinkFilter(opts ...FilterOption) *LinkFilter {
	f := &LinkFilter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Allow reports whether link should be offered to the frontier.
//
// Rules, in order:
//  1. Only absolute http and https URLs are allowed
//  2. If allowed hosts are set, the host must be one of them
//  3. A path matching any ignore pattern is rejected
//  4. If follow patterns are set, the path must match one of them
func (f *LinkFilter) Allow(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	if f == nil {
		return true
	}

	host := strings.ToLower(u.Hostname())
	if len(f.allowedHosts) > 0 {
		if _, ok := f.allowedHosts[host]; !ok {
			return false
		}
	}

	ignore, follow := f.ignorePatterns, f.followPatterns
	if f.hostPatterns != nil {
		hostIgnore, hostFollow := f.hostPatterns(host)
		if hostIgnore != nil {
			ignore = hostIgnore
		}
		if hostFollow != nil {
			follow = hostFollow
		}
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, pattern := range ignore {
		if matchPattern(pattern, path) {
			return false
		}
	}

	if len(follow) > 0 {
		for _, pattern := range follow {
			if matchPattern(pattern, path) {
				return true
			}
		}
		return false
	}

	return true
}

// matchPattern checks if a path matches a glob pattern.
//
// Examples:
//   - "/admin/*" matches "/admin" and "/admin/users/1"
//   - "*.pdf" matches "/docs/file.pdf"
//   - "/api/v?" matches "/api/v1"
func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	if strings.HasPrefix(pattern, "*.") && strings.HasSuffix(path, pattern[1:]) {
		return true
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}

	// Bare filename patterns like "report-*" match against the last segment.
	if strings.Contains(pattern, "*") && !strings.Contains(pattern, "/") {
		if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
			return true
		}
	}

	return false
}
