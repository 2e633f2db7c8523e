package database

import (
	"time"

	"github.com/nao1215/pagecrawl/internal/model"
)

// FetchRecord is one row of the scraped_links table.
type FetchRecord struct {
	ID          int64     `json:"id"`
	WebsiteName string    `json:"website_name"`
	LinkName    string    `json:"link_name"`
	StartTime   time.Time `json:"download_start_time"`
	EndTime     time.Time `json:"download_end_time"`
	ElapsedMS   int64     `json:"elapsed_time_ms"`
	SizeKB      float64   `json:"size_kb"`
	Success     bool      `json:"success"`
	StatusCode  int       `json:"status_code"`
	Error       string    `json:"error,omitempty"`
}

// NewFetchRecord converts a fetch result into a FetchRecord.
func NewFetchRecord(r *model.FetchResult) *FetchRecord {
	return &FetchRecord{
		WebsiteName: r.Site(),
		LinkName:    r.URL,
		StartTime:   r.StartedAt,
		EndTime:     r.FinishedAt,
		ElapsedMS:   r.Elapsed().Milliseconds(),
		SizeKB:      r.SizeKB(),
		Success:     r.Success,
		StatusCode:  r.StatusCode,
		Error:       r.Error,
	}
}

// ListOptions filters ListFetchRecords.
type ListOptions struct {
	// Site restricts results to one website name. Empty means all sites.
	Site string

	// Limit caps the number of rows. Zero or less means no limit.
	Limit int

	// FailedOnly returns only failed fetches.
	FailedOnly bool
}
