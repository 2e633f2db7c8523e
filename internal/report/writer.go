package report

import (
	"io"

	"github.com/nao1215/pagecrawl/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write renders the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.CrawlSummary) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It is used to print a report to the terminal and save it to a file at once.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *model.CrawlSummary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeFormat is used for timestamps in text and markdown reports.
const timeFormat = "2006-01-02 15:04:05 MST"

// statusText describes how the crawl ended.
func statusText(summary *model.CrawlSummary) string {
	switch {
	case summary.Cancelled:
		return "Cancelled (partial results)"
	case summary.LimitReached:
		return "Page limit reached"
	default:
		return "Complete"
	}
}
