// Package crawler orchestrates the two-phase card crawl: paginate the
// list pages for summaries, then visit each detail page for the rarity,
// and finally join and filter the two sets.
package crawler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cardex/cardex/internal/card"
	"github.com/cardex/cardex/internal/logger"
	"github.com/cardex/cardex/internal/schema"
	"github.com/cardex/cardex/internal/scraper"
)

// ProgressFunc reports detail-phase progress: completed out of total.
type ProgressFunc func(completed, total int)

// Stats summarizes one crawl run.
type Stats struct {
	PagesFetched int
	Summaries    int
	Omitted      int // detail fetches that failed (keep-going mode)
	Unmatched    int // summaries with no usable rarity
	Duplicates   int // repeated card codes dropped (first occurrence wins)
	FilteredOut  int // cards outside the rarity allow-set
	Kept         int
}

// Crawler runs the two-phase crawl against one site schema.
type Crawler struct {
	fetcher  scraper.Fetcher
	schema   schema.PageSchema
	config   Config
	progress ProgressFunc
}

// New creates a Crawler.
func New(fetcher scraper.Fetcher, ps schema.PageSchema, cfg Config) *Crawler {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Crawler{
		fetcher: fetcher,
		schema:  ps,
		config:  cfg,
	}
}

// OnProgress registers a detail-phase progress callback.
func (c *Crawler) OnProgress(fn ProgressFunc) {
	c.progress = fn
}

// Run executes the full pipeline and returns the filtered records in the
// order their summaries were first discovered.
func (c *Crawler) Run(ctx context.Context) ([]card.Record, Stats, error) {
	var stats Stats

	summaries, pages, err := c.fetchSummaries(ctx)
	if err != nil {
		return nil, stats, err
	}
	stats.PagesFetched = pages
	stats.Summaries = len(summaries)

	if len(summaries) == 0 {
		logger.Warn("no cards found on any list page", "category", c.config.Category)
		return nil, stats, nil
	}

	rarities, omitted, err := c.fetchRarities(ctx, summaries)
	if err != nil {
		return nil, stats, err
	}
	stats.Omitted = omitted

	records := joinAndFilter(summaries, rarities, c.config.AllowSet(), &stats)
	stats.Kept = len(records)
	return records, stats, nil
}

// fetchSummaries walks the list pages starting at the configured page and
// stops on the first empty page. A page opening with the same card and
// entry count as the previous page is treated as the site echoing its
// last page and also ends the walk; without that guard the loop would
// never terminate on such sites.
func (c *Crawler) fetchSummaries(ctx context.Context) ([]card.Summary, int, error) {
	var (
		summaries []card.Summary
		pages     int
		lastCount = -1
		lastFirst string
	)

	for page := c.config.StartPage; ; page++ {
		if err := sleepCtx(ctx, c.config.ListDelay); err != nil {
			return nil, pages, err
		}

		pageURL := c.config.ListPageURL(page)
		logger.Info("fetching list page", "page", page, "category", c.config.Category)

		content, err := c.fetcher.Fetch(ctx, pageURL, scraper.FetchOptions{})
		if err != nil {
			return nil, pages, err
		}
		pages++

		entries, err := c.schema.ParseListPage(content.HTML, pageURL)
		if err != nil {
			return nil, pages, err
		}

		if len(entries) == 0 {
			logger.Info("empty list page, end of results", "page", page)
			break
		}

		if page > c.config.StartPage && len(entries) == lastCount && entries[0].Code == lastFirst {
			logger.Info("list page repeated previous page, assuming end of results",
				"page", page, "first_code", lastFirst)
			break
		}

		summaries = append(summaries, entries...)
		lastCount = len(entries)
		lastFirst = entries[0].Code
		logger.Info("list page parsed", "page", page, "entries", len(entries), "total", len(summaries))
	}

	return summaries, pages, nil
}

// fetchRarities visits each summary's detail page through a bounded
// worker pool. Results are keyed by summary index so the output order
// never depends on fetch completion order. The returned slice is aligned
// with summaries; an empty string marks a card with no usable rarity.
func (c *Crawler) fetchRarities(ctx context.Context, summaries []card.Summary) ([]string, int, error) {
	rarities := make([]string, len(summaries))
	omitted := make([]bool, len(summaries))

	var (
		completed int
		total     = len(summaries)
	)
	progressCh := make(chan struct{}, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Concurrency)

	for i, s := range summaries {
		i, s := i, s
		g.Go(func() error {
			if err := sleepCtx(gctx, c.config.DetailDelay); err != nil {
				return err
			}

			content, err := c.fetcher.Fetch(gctx, s.DetailURL, scraper.FetchOptions{})
			if err != nil {
				if c.config.KeepGoing {
					logger.Warn("detail fetch failed, card omitted", "code", s.Code, "error", err)
					omitted[i] = true
					progressCh <- struct{}{}
					return nil
				}
				return err
			}

			rarity, err := c.schema.ParseDetailPage(content.HTML)
			if err != nil {
				// Markup surprises on one card never sink the run.
				logger.Warn("rarity not found on detail page", "code", s.Code, "error", err)
				progressCh <- struct{}{}
				return nil
			}

			rarities[i] = rarity
			progressCh <- struct{}{}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	for {
		select {
		case <-progressCh:
			completed++
			if c.progress != nil {
				c.progress(completed, total)
			}
		case err := <-done:
			if err != nil {
				return nil, 0, err
			}
			// Drain progress events that raced with completion.
			for len(progressCh) > 0 {
				<-progressCh
				completed++
				if c.progress != nil {
					c.progress(completed, total)
				}
			}
			count := 0
			for _, o := range omitted {
				if o {
					count++
				}
			}
			return rarities, count, nil
		}
	}
}

// sleepCtx pauses for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
