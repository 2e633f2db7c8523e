package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned by NormalizeURL for input that cannot be
// turned into an absolute http or https URL.
var ErrInvalidURL = errors.New("invalid URL")

// NormalizeURL turns user input into the absolute form used as a frontier
// key. A missing scheme defaults to http.
//
// Normalization is minimal: trailing slashes, fragments,
// letter case and default ports are kept as given, so two URLs that differ
// only in those respects are crawled as distinct pages.
func NormalizeURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q: unsupported scheme %q", ErrInvalidURL, raw, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrInvalidURL, raw)
	}

	return u.String(), nil
}

// hostOf returns the lower-case host name of an already normalized URL.
func hostOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
