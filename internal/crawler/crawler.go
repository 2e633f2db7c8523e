package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nao1215/pagecrawl/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Default crawl settings.
const (
	DefaultMaxPages = 20
	DefaultWorkers  = 4
	DefaultDelay    = 200 * time.Millisecond
)

// Configuration errors returned by Crawl before any worker starts.
var (
	ErrNoSeeds         = errors.New("no seed URLs")
	ErrNoFetcher       = errors.New("fetcher is required")
	ErrInvalidMaxPages = errors.New("page limit must be positive")
	ErrInvalidWorkers  = errors.New("worker count must be positive")
	ErrInvalidDelay    = errors.New("politeness delay must be non-negative")
	ErrCrawlerReused   = errors.New("crawler has already been used")
)

// Fetcher retrieves one page and its outbound links.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*model.Document, error)
}

// Recorder receives the result of every fetch attempt.
// Errors are logged by the crawler and never stop the crawl.
type Recorder interface {
	Record(ctx context.Context, result *model.FetchResult) error
}

// Crawler coordinates a bounded breadth-first crawl.
// It owns the frontier, the page-limit state and the worker pool, and
// decides when the crawl is over.
//
// A Crawler runs a single crawl; create a new one for each crawl.
type Crawler struct {
	fetcher  Fetcher
	recorder Recorder
	filter   *LinkFilter
	limiter  *rate.Limiter
	logger   *slog.Logger

	maxPages int
	workers  int
	delay    time.Duration
	sameHost bool

	frontier *Frontier
	state    *State
	phase    atomic.Int32
	started  atomic.Bool

	// counters for the summary
	succeeded  atomic.Int64
	failed     atomic.Int64
	fetched    atomic.Int64
	totalBytes atomic.Int64

	stopOnce sync.Once
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxPages sets the maximum number of fetch attempts.
func WithMaxPages(n int) Option {
	return func(c *Crawler) {
		c.maxPages = n
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		c.workers = n
	}
}

// WithDelay sets the fixed pause each worker takes after a fetch.
func WithDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.delay = d
	}
}

// WithRecorder sets the sink that receives fetch results.
func WithRecorder(r Recorder) Option {
	return func(c *Crawler) {
		c.recorder = r
	}
}

// WithLinkFilter sets the filter applied to discovered links.
func WithLinkFilter(f *LinkFilter) Option {
	return func(c *Crawler) {
		c.filter = f
	}
}

// WithSameHost restricts discovered links to the hosts of the seeds.
func WithSameHost(sameHost bool) Option {
	return func(c *Crawler) {
		c.sameHost = sameHost
	}
}

// WithRateLimit caps the number of fetches started per second across all
// workers. Fetches are spaced evenly with no burst. Zero or less disables
// the cap.
func WithRateLimit(perSecond float64) Option {
	return func(c *Crawler) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// New creates a Crawler that uses fetcher to retrieve pages.
func New(fetcher Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:  fetcher,
		maxPages: DefaultMaxPages,
		workers:  DefaultWorkers,
		delay:    DefaultDelay,
		frontier: NewFrontier(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.state = NewState(c.maxPages)

	return c
}

// validate checks the settings and seeds before anything is started.
func (c *Crawler) validate(seeds []string) error {
	if len(seeds) == 0 {
		return ErrNoSeeds
	}
	if c.maxPages <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxPages, c.maxPages)
	}
	if c.workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.workers)
	}
	if c.delay < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDelay, c.delay)
	}
	if c.fetcher == nil {
		return ErrNoFetcher
	}
	return nil
}

// Crawl fetches pages reachable from seeds until the page limit is reached,
// the frontier is permanently empty, Stop is called or ctx is done.
// It returns only after every worker has exited.
//
// The returned error is non-nil only for invalid configuration; individual
// fetch and sink failures never fail the crawl. When ctx is cancelled the
// partial summary is returned together with ctx.Err().
func (c *Crawler) Crawl(ctx context.Context, seeds []string) (*model.CrawlSummary, error) {
	if err := c.validate(seeds); err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		u, err := NormalizeURL(seed)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, u)
	}

	if !c.started.CompareAndSwap(false, true) {
		return nil, ErrCrawlerReused
	}

	if c.sameHost {
		hosts := make([]string, 0, len(normalized))
		for _, u := range normalized {
			hosts = append(hosts, hostOf(u))
		}
		if c.filter == nil {
			c.filter = NewLinkFilter()
		}
		WithAllowedHosts(hosts...)(c.filter)
	}

	summary := &model.CrawlSummary{
		Limit:     c.maxPages,
		Workers:   c.workers,
		StartedAt: time.Now(),
	}

	// Seeds pass through the same gate as discovered links,
	// so duplicate seeds collapse into one.
	c.setPhase(PhaseSeeding)
	for _, u := range normalized {
		if c.frontier.Enqueue(u) {
			summary.Seeds = append(summary.Seeds, u)
		}
	}

	c.logger.Info("crawl started",
		"seeds", summary.Seeds,
		"maxPages", c.maxPages,
		"workers", c.workers,
		"delay", c.delay,
	)

	c.setPhase(PhaseRunning)

	var g errgroup.Group
	for id := range c.workers {
		g.Go(func() error {
			c.runWorker(ctx, id)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	c.setPhase(PhaseTerminated)

	summary.FinishedAt = time.Now()
	summary.Discovered = c.frontier.Visited()
	summary.Attempted = int(c.fetched.Load())
	summary.Succeeded = int(c.succeeded.Load())
	summary.Failed = int(c.failed.Load())
	summary.TotalBytes = c.totalBytes.Load()
	summary.Pending = c.frontier.Len()
	summary.LimitReached = c.state.LimitReached()
	summary.Cancelled = ctx.Err() != nil || c.state.Stopped()

	c.logger.Info("crawl finished",
		"discovered", len(summary.Discovered),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"pending", summary.Pending,
		"limitReached", summary.LimitReached,
		"elapsed", summary.Duration(),
	)

	return summary, ctx.Err()
}

// Stop asks the workers to finish their current fetch and exit.
// Crawl still waits for in-flight fetches before returning.
func (c *Crawler) Stop() {
	c.stopOnce.Do(func() {
		c.state.Stop()
		c.frontier.Close()
		c.setPhase(PhaseDraining)
		c.logger.Info("crawl stop requested")
	})
}

// Phase returns the current lifecycle phase.
func (c *Crawler) Phase() Phase {
	return Phase(c.phase.Load())
}

// setPhase moves the crawl forward. Phases never go backwards.
func (c *Crawler) setPhase(p Phase) {
	for {
		cur := c.phase.Load()
		if int32(p) <= cur {
			return
		}
		if c.phase.CompareAndSwap(cur, int32(p)) {
			return
		}
	}
}
