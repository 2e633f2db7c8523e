package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/pagecrawl/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// The discovered pages are always printed last, one URL per line,
// so the output can be piped to other tools with a simple filter.
type SimpleWriter struct {
	baseWriter

	// listOnly suppresses the header and statistics.
	listOnly bool

	// verbose adds seeds and timing details.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithListOnly configures the writer to print only the discovered URLs.
func WithListOnly(listOnly bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.listOnly = listOnly
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.CrawlSummary) (int, error) {
	var sb strings.Builder

	if !w.listOnly {
		w.writeHeader(&sb, summary)
		w.writeStatistics(&sb, summary)
	}
	w.writeDiscovered(&sb, summary)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.CrawlSummary) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          PAGECRAWL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Started:   %s\n", summary.StartedAt.Format(timeFormat))
	fmt.Fprintf(sb, "Duration:  %s\n", summary.Duration().Round(time.Millisecond))
	fmt.Fprintf(sb, "Status:    %s\n", statusText(summary))

	if w.verbose {
		fmt.Fprintf(sb, "Workers:   %d\n", summary.Workers)
		sb.WriteString("Seeds:\n")
		for _, seed := range summary.Seeds {
			fmt.Fprintf(sb, "  %s\n", seed)
		}
	}
	sb.WriteString("\n")
}

// writeStatistics writes the fetch counters.
func (w *SimpleWriter) writeStatistics(sb *strings.Builder, summary *model.CrawlSummary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("STATISTICS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  Limit:      %d\n", summary.Limit)
	fmt.Fprintf(sb, "  Discovered: %d\n", len(summary.Discovered))
	fmt.Fprintf(sb, "  Attempted:  %d\n", summary.Attempted)
	fmt.Fprintf(sb, "  Succeeded:  %d\n", summary.Succeeded)
	fmt.Fprintf(sb, "  Failed:     %d\n", summary.Failed)
	fmt.Fprintf(sb, "  Pending:    %d\n", summary.Pending)
	fmt.Fprintf(sb, "  Downloaded: %.2f KB\n", float64(summary.TotalBytes)/1024)
	sb.WriteString("\n")
}

// writeDiscovered writes the final discovered set.
func (w *SimpleWriter) writeDiscovered(sb *strings.Builder, summary *model.CrawlSummary) {
	if !w.listOnly {
		sb.WriteString("Discovered pages:\n")
	}
	for _, u := range summary.Discovered {
		sb.WriteString(u)
		sb.WriteString("\n")
	}
}
