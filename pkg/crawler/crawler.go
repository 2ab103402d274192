// Package crawler drives the breadth-first crawl of a single site, composing
// the fetcher, extractor, lookup client, and result sink into one controlled
// sequential loop.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"svcmap-crawler/pkg/config"
	"svcmap-crawler/pkg/extract"
	"svcmap-crawler/pkg/fetch"
	"svcmap-crawler/pkg/lookup"
	"svcmap-crawler/pkg/models"
	"svcmap-crawler/pkg/output"
	"svcmap-crawler/pkg/parse"
	"svcmap-crawler/pkg/queue"
	"svcmap-crawler/pkg/storage"
	"svcmap-crawler/pkg/utils"
	"svcmap-crawler/pkg/validate"
)

// Crawler orchestrates the crawl of one site. All mutable crawl state
// (frontier, visited set, stats) is owned here and mutated only by the
// sequential Run loop; nothing is shared or locked.
type Crawler struct {
	cfg      config.Config
	seedHost string

	fetcher   fetch.PageFetcher
	extractor extract.LinkExtractor
	lookup    lookup.Client
	sink      output.ResultSink

	frontier *queue.Frontier
	visited  *storage.VisitedSet
	stats    models.CrawlStats

	log *logrus.Entry
}

// New creates a Crawler. The seed host is fixed here for the whole run;
// a seed URL without a usable host is a configuration error.
func New(
	cfg config.Config,
	fetcher fetch.PageFetcher,
	extractor extract.LinkExtractor,
	lookupClient lookup.Client,
	sink output.ResultSink,
	baseLog *logrus.Logger,
) (*Crawler, error) {
	seedHost, err := parse.SeedHost(cfg.StartURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrConfigValidation, err)
	}

	log := baseLog.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"host":   seedHost,
	})

	return &Crawler{
		cfg:       cfg,
		seedHost:  seedHost,
		fetcher:   fetcher,
		extractor: extractor,
		lookup:    lookupClient,
		sink:      sink,
		frontier:  queue.NewFrontier(cfg.MaxDepth, baseLog),
		visited:   storage.NewVisitedSet(),
		log:       log,
	}, nil
}

// Run executes the crawl and blocks until the frontier is exhausted, the
// depth bound is reached, or the context is cancelled. Per-URL failures are
// isolated: counted, logged, and skipped. The returned stats are final.
func (c *Crawler) Run(ctx context.Context) (models.CrawlStats, error) {
	start := time.Now()
	c.log.WithFields(logrus.Fields{"start_url": c.cfg.StartURL, "max_depth": c.cfg.MaxDepth}).
		Info("Crawl starting...")

	if err := c.sink.Initialize(); err != nil {
		return c.stats, err
	}

	// The seed is looked up before it ever enters the frontier; its row (if
	// any) is always the first in the output. Failure is counted, not fatal.
	c.lookupAndRecord(ctx, c.cfg.StartURL)
	c.frontier.Enqueue(c.cfg.StartURL, 0)

	for depth := 0; depth <= c.cfg.MaxDepth; depth++ {
		batch := c.frontier.Drain(depth)
		if len(batch) == 0 {
			c.log.WithField("depth", depth).Debug("Frontier empty, nothing left to process")
			break
		}
		c.log.WithFields(logrus.Fields{"depth": depth, "pending": len(batch)}).Info("Processing depth level")

		for _, pageURL := range batch {
			if err := ctx.Err(); err != nil {
				c.log.Warnf("Crawl cancelled: %v", err)
				c.logSummary(time.Since(start))
				return c.stats, err
			}
			c.processPage(ctx, pageURL, depth)
		}
	}

	c.logSummary(time.Since(start))
	return c.stats, nil
}

// processPage handles one dequeued URL: the authoritative visited check,
// the fetch, and the resolve → validate → lookup → enqueue pipeline for
// every href on the rendered page.
func (c *Crawler) processPage(ctx context.Context, pageURL string, depth int) {
	taskLog := c.log.WithFields(logrus.Fields{"url": pageURL, "depth": depth})

	// Authoritative dedup: the enqueue-time check is only advisory, so the
	// same URL can sit in a bucket more than once. It is processed once.
	if c.visited.Contains(pageURL) {
		taskLog.Debug("Already visited, skipping")
		return
	}
	c.visited.MarkVisited(pageURL)
	c.stats.Visited++
	if depth > c.stats.MaxDepthReached {
		c.stats.MaxDepthReached = depth
	}

	nextDepth := depth + 1
	if nextDepth > c.cfg.MaxDepth {
		// Links found here could never be enqueued, so rendering the page
		// would buy nothing. The URL itself was already looked up when it
		// was discovered.
		taskLog.Debug("Max depth reached for next level, skipping page fetch")
		return
	}

	html, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		c.stats.Failed++
		taskLog.WithField("category", utils.CategorizeError(err)).Warnf("Fetch failed: %v", err)
		return
	}

	hrefs, err := c.extractor.Hrefs(html)
	if err != nil {
		c.stats.Failed++
		taskLog.WithField("category", utils.CategorizeError(err)).Warnf("Link extraction failed: %v", err)
		return
	}

	pageLinks := storage.NewPageLinkSet()
	discovered := 0
	for _, href := range hrefs {
		if href == "" {
			continue
		}
		resolved := parse.Resolve(pageURL, href)
		if !validate.IsValid(resolved, c.seedHost) {
			taskLog.WithField("link", resolved).Debug("Link filtered")
			continue
		}
		if c.visited.Contains(resolved) { // advisory; dequeue check is authoritative
			continue
		}
		if pageLinks.Contains(resolved) {
			continue
		}
		pageLinks.Add(resolved)

		c.lookupAndRecord(ctx, resolved)
		c.frontier.Enqueue(resolved, nextDepth)
		discovered++

		if c.cfg.LinkDelay > 0 {
			time.Sleep(c.cfg.LinkDelay)
		}
	}
	taskLog.WithField("new_links", discovered).Info("Page processed")
}

// lookupAndRecord calls the lookup service for one URL and appends the
// result on success. Failures are counted and logged, never fatal.
func (c *Crawler) lookupAndRecord(ctx context.Context, target string) {
	lookupLog := c.log.WithField("url", target)

	result, err := c.lookup.Lookup(ctx, target)
	if err != nil {
		c.stats.Failed++
		lookupLog.WithField("category", utils.CategorizeError(err)).Warnf("Lookup failed: %v", err)
		return
	}
	if err := c.sink.Append(result); err != nil {
		c.stats.Failed++
		lookupLog.Errorf("Failed to record lookup result: %v", err)
		return
	}
	c.stats.Processed++
	lookupLog.WithFields(logrus.Fields{
		"service_url": result.ServiceURL,
		"k8s_enabled": result.K8sEnabled,
	}).Info("Lookup recorded")
}
