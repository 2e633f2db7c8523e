// Package sink contains the persistence sinks that receive fetch results
// from the crawler: raw page files, database records and a fan-out that
// combines them. Sinks are best effort; the crawler logs their errors and
// carries on.
package sink
