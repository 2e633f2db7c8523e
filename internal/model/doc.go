// Package model defines the data structures shared by the crawler, the
// fetcher, the persistence sinks and the report writers.
//
// This package contains the following main types:
//   - Document: A fetched page with its extracted links
//   - FetchResult: The outcome of one fetch attempt, handed to sinks
//   - CrawlSummary: The final result of a crawl
//
// The types live in their own package so that crawler, fetcher, sink and
// report can all use them without import cycles.
package model
