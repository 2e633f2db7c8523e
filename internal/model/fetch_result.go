package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// UnknownSite is the site name used when a URL has no parsable host.
const UnknownSite = "unknown"

// FetchResult is the outcome of one fetch attempt.
// A worker creates it after calling the fetcher, hands it to the
// persistence sinks once, and then drops it.
type FetchResult struct {
	// URL is the URL that was attempted.
	URL string `json:"url"`

	// Success is true when the fetcher returned a document.
	Success bool `json:"success"`

	// StatusCode is the HTTP status code, or 0 if no response was received.
	StatusCode int `json:"status_code,omitempty"`

	// Title is the page title on success.
	Title string `json:"title,omitempty"`

	// Size is the number of body bytes received.
	Size int64 `json:"size"`

	// Links contains the links extracted from the page. Empty on failure.
	Links []string `json:"links,omitempty"`

	// StartedAt is when the fetch began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the fetch returned.
	FinishedAt time.Time `json:"finished_at"`

	// Error holds the failure message. Empty on success.
	Error string `json:"error,omitempty"`

	// Body is the page content, kept only until the sinks have run.
	Body []byte `json:"-"`
}

// NewFetchResult builds a FetchResult from the outcome of a fetch.
// Either doc or err is expected to be nil.
func NewFetchResult(pageURL string, doc *Document, err error, started, finished time.Time) *FetchResult {
	r := &FetchResult{
		URL:        pageURL,
		StartedAt:  started,
		FinishedAt: finished,
	}

	if err != nil {
		r.Error = err.Error()
		var sc interface{ HTTPStatus() int }
		if errors.As(err, &sc) {
			r.StatusCode = sc.HTTPStatus()
		}
		return r
	}
	if doc == nil {
		r.Error = "fetcher returned no document"
		return r
	}

	r.Success = true
	r.StatusCode = doc.StatusCode
	r.Title = doc.Title
	r.Size = int64(len(doc.Body))
	r.Links = doc.Links
	r.Body = doc.Body
	return r
}

// Elapsed returns the wall-clock duration of the fetch.
func (r *FetchResult) Elapsed() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// SizeKB returns the body size in kibibytes.
func (r *FetchResult) SizeKB() float64 {
	return float64(r.Size) / 1024.0
}

// Site returns the host of the URL with a leading "www." removed.
// It returns UnknownSite when the URL cannot be parsed or has no host.
func (r *FetchResult) Site() string {
	return SiteOf(r.URL)
}

// SiteOf returns the site name for rawURL, see FetchResult.Site.
func SiteOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return UnknownSite
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
