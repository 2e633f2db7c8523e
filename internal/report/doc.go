// Package report renders crawl summaries.
//
// Three formats are available:
//   - SimpleWriter: plain text for the terminal, ending with the list of
//     discovered pages one per line
//   - JSONWriter: structured output for other tools
//   - MarkdownWriter: tables and a mermaid chart for sharing
//
// All writers implement Writer and can be combined with MultiWriter.
package report
