package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/pagecrawl/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.CrawlSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeStatistics(md, summary)
	w.writeDiscovered(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.CrawlSummary) {
	md.H1("Pagecrawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", summary.StartedAt.Format(timeFormat)},
			{"Duration", summary.Duration().Round(time.Millisecond).String()},
			{"Workers", strconv.Itoa(summary.Workers)},
			{"Page Limit", strconv.Itoa(summary.Limit)},
			{"Status", statusText(summary)},
		},
	})
	md.PlainText("")

	if len(summary.Seeds) > 0 {
		md.H2("Seeds")
		md.PlainText("")
		md.BulletList(summary.Seeds...)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeStatistics(md *markdown.Markdown, summary *model.CrawlSummary) {
	md.H2("Statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Discovered", strconv.Itoa(len(summary.Discovered))},
			{"Attempted", strconv.Itoa(summary.Attempted)},
			{"Succeeded", strconv.Itoa(summary.Succeeded)},
			{"Failed", strconv.Itoa(summary.Failed)},
			{"Pending", strconv.Itoa(summary.Pending)},
			{"Downloaded", fmt.Sprintf("%.2f KB", float64(summary.TotalBytes)/1024)},
			{"Success Rate", fmt.Sprintf("%.1f%%", summary.SuccessRate()*100)},
		},
	})
	md.PlainText("")

	if summary.Attempted > 0 {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart of fetch outcomes.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.CrawlSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Fetch Outcomes"),
		piechart.WithShowData(true),
	)

	if summary.Succeeded > 0 {
		chart.LabelAndIntValue("Succeeded", uint64(summary.Succeeded))
	}
	if summary.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(summary.Failed))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.CrawlSummary) {
	switch {
	case summary.Cancelled:
		md.Warningf("The crawl was cancelled after %d fetch(es). Results are partial.", summary.Attempted)
	case summary.Attempted > 0 && summary.Succeeded == 0:
		md.Cautionf("All %d fetch(es) failed.", summary.Attempted)
	case summary.Failed > 0:
		md.Importantf("%d of %d fetch(es) failed.", summary.Failed, summary.Attempted)
	case summary.LimitReached:
		md.Note("The page limit was reached before the frontier was exhausted.")
	default:
		md.Tip("Every reachable page within the limit was fetched.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeDiscovered(md *markdown.Markdown, summary *model.CrawlSummary) {
	md.H2("Discovered Pages")
	md.PlainText("")

	if len(summary.Discovered) == 0 {
		md.PlainText("No pages were discovered.")
		md.PlainText("")
		return
	}

	md.BulletList(summary.Discovered...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pagecrawl](https://github.com/nao1215/pagecrawl)*")
}
