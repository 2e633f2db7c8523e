// Package database stores per-fetch metadata.
//
// Two stores share the scraped_links layout (site, URL, download start and
// end time, elapsed milliseconds, size in KB, outcome):
//   - CrawlDB: a local SQLite file (modernc.org/sqlite, CGO-free), always
//     available and used by the history command
//   - PostgresDB: an optional PostgreSQL database (github.com/lib/pq)
//     enabled by a connection string
package database
