// Package crawler implements the crawl coordination engine: the frontier,
// the visited registry, the dedup gate, the fetch worker pool and the
// coordinator that decides when a crawl is over.
//
// # Architecture
//
// Crawler is the coordinator. It seeds a Frontier, starts a fixed number of
// workers and waits for all of them to exit. Each worker repeatedly:
//
//  1. Asks the page-limit State for a grant (counted at grant time)
//  2. Takes the next URL from the Frontier, blocking while other workers
//     may still add links
//  3. Calls the Fetcher
//  4. Offers every extracted link to the Frontier through TryClaim
//  5. Hands the FetchResult to the Recorder, logging any error
//  6. Sleeps for the fixed politeness delay
//
// # Synchronization
//
// The Frontier is the only synchronization boundary for URLs. TryClaim
// checks and registers a URL under one lock, so two workers that discover
// the same link at the same time cannot both enqueue it. Dequeueing moves
// the URL into the visited registry inside the same critical section.
//
// Termination uses an in-flight counter: the crawl is exhausted when the
// queue is empty and no fetch is in flight, because only an in-flight fetch
// can produce new links.
//
// # Failure handling
//
// A failed fetch is recorded once and never retried. Recorder errors are
// logged and do not affect the crawl. Only invalid configuration makes
// Crawl return an error before starting.
//
// # Usage
//
//	c := crawler.New(fetcher,
//	    crawler.WithMaxPages(20),
//	    crawler.WithWorkers(4),
//	    crawler.WithDelay(200*time.Millisecond),
//	    crawler.WithRecorder(recorder),
//	)
//	summary, err := c.Crawl(ctx, []string{"https://example.com/"})
package crawler
