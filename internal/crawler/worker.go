package crawler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/pagecrawl/internal/model"
)

// runWorker is the loop of one pool worker. It exits when the page limit
// is reached, the frontier is exhausted, Stop is called or ctx is done.
func (c *Crawler) runWorker(ctx context.Context, id int) {
	logger := c.logger.With("worker", id)
	logger.Debug("worker started")
	defer logger.Debug("worker stopped")

	for {
		if !c.state.Acquire() {
			c.setPhase(PhaseDraining)
			return
		}

		pageURL, err := c.frontier.Next(ctx)
		if err != nil {
			c.state.Refund()
			c.setPhase(PhaseDraining)
			if errors.Is(err, ErrExhausted) {
				logger.Debug("frontier exhausted")
			}
			return
		}

		c.process(ctx, logger, pageURL)

		if !c.pause(ctx) {
			return
		}
	}
}

// process fetches one claimed URL, feeds its links back into the frontier
// and records the result. The frontier's in-flight count is released as
// soon as the links are enqueued so idle workers can detect exhaustion
// without waiting for the sinks or the politeness delay.
func (c *Crawler) process(ctx context.Context, logger *slog.Logger, pageURL string) {
	// A URL whose rate limiter wait is aborted is never requested, so it
	// is neither counted as an attempt nor recorded.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.Debug("rate limiter wait aborted", "url", pageURL, "error", err)
			c.state.Refund()
			c.frontier.Done()
			return
		}
	}

	c.fetched.Add(1)
	started := time.Now()
	doc, err := c.fetcher.Fetch(ctx, pageURL)
	finished := time.Now()

	result := model.NewFetchResult(pageURL, doc, err, started, finished)

	if result.Success {
		added := 0
		for _, link := range result.Links {
			if !c.filter.Allow(link) {
				continue
			}
			if c.frontier.Enqueue(link) {
				added++
			}
		}
		c.succeeded.Add(1)
		c.totalBytes.Add(result.Size)
		logger.Info("page fetched",
			"url", pageURL,
			"status", result.StatusCode,
			"bytes", result.Size,
			"links", len(result.Links),
			"queued", added,
			"elapsed", result.Elapsed(),
		)
	} else {
		c.failed.Add(1)
		logger.Warn("fetch failed", "url", pageURL, "error", result.Error)
	}
	c.frontier.Done()

	c.record(ctx, logger, result)
}

// record hands result to the recorder. Failures are logged only.
func (c *Crawler) record(ctx context.Context, logger *slog.Logger, result *model.FetchResult) {
	if c.recorder == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("recorder panicked", "url", result.URL, "panic", r)
		}
	}()

	if err := c.recorder.Record(context.WithoutCancel(ctx), result); err != nil {
		logger.Error("failed to record fetch result", "url", result.URL, "error", err)
	}
}

// pause applies the politeness delay. It returns false if ctx is done.
func (c *Crawler) pause(ctx context.Context) bool {
	if c.delay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
