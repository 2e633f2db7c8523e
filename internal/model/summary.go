package model

import "time"

// CrawlSummary is the final outcome of a crawl.
// Discovered lists every URL that was claimed for fetching, which is not
// the same as every URL that was fetched successfully.
type CrawlSummary struct {
	// Seeds are the normalized seed URLs after duplicate removal.
	Seeds []string `json:"seeds"`

	// Discovered lists the claimed URLs in claim order.
	Discovered []string `json:"discovered"`

	// Attempted is the number of fetches that were started.
	Attempted int `json:"attempted"`

	// Succeeded is the number of fetches that returned a document.
	Succeeded int `json:"succeeded"`

	// Failed is the number of fetches that returned an error.
	Failed int `json:"failed"`

	// Pending is the number of discovered URLs left in the frontier.
	Pending int `json:"pending"`

	// TotalBytes is the sum of body sizes of successful fetches.
	TotalBytes int64 `json:"total_bytes"`

	// Limit is the configured page limit.
	Limit int `json:"limit"`

	// Workers is the worker pool size.
	Workers int `json:"workers"`

	// LimitReached is true when the crawl stopped because of the page limit.
	LimitReached bool `json:"limit_reached"`

	// Cancelled is true when the crawl was stopped before it finished.
	Cancelled bool `json:"cancelled,omitempty"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the last worker exited.
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the crawl ran.
func (s *CrawlSummary) Duration() time.Duration {
	if s.FinishedAt.Before(s.StartedAt) {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// SuccessRate returns the fraction of attempted fetches that succeeded.
func (s *CrawlSummary) SuccessRate() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Attempted)
}
