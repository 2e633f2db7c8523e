// Package main provides the entry point for the pagecrawl CLI.
//
// pagecrawl is a bounded, polite, concurrent web crawler. It starts from
// one or more seed URLs, fetches pages breadth-first with a fixed pool of
// workers, and stops after a configured number of fetch attempts.
//
// Usage:
//
//	pagecrawl crawl <seed-url>...
//	pagecrawl history [site]
//
// See --help for all available options.
package main

func main() {
	Execute()
}
