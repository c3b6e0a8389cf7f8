package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kargo-kult-wahrheit/ICD-10-serbian/internal/metrics"
)

// ErrStartPage marks a failure on the crawl start page. Nothing can be
// processed without it, so callers treat this class as fatal.
var ErrStartPage = errors.New("start page unavailable")

// PageHandler consumes one fetched page. Returning an error aborts the crawl.
type PageHandler func(url string, body []byte) error

// EngineConfig holds the settings for one crawl run.
type EngineConfig struct {
	StartURL string
	Delay    time.Duration
}

// Engine walks the site: the start page first, then every discovered detail
// page in sorted order, handing each body to the PageHandler. The visited set
// and pacing state are owned by the Engine, so one Engine serves exactly one
// run; construct a fresh one per crawl.
type Engine struct {
	cfg     EngineConfig
	fetcher Fetcher
	retry   RetryPolicy
	logger  *zap.Logger
	visited map[string]struct{}
}

// NewEngine builds an Engine for a single run.
func NewEngine(cfg EngineConfig, fetcher Fetcher, retry RetryPolicy, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		fetcher: fetcher,
		retry:   retry,
		logger:  logger,
		visited: make(map[string]struct{}),
	}
}

// Run fetches the start page and every detail page reachable from it, calling
// handle once per retrieved page. A start-page failure aborts with an error
// wrapping ErrStartPage; a detail-page failure is logged and skipped.
func (e *Engine) Run(ctx context.Context, handle PageHandler) error {
	e.logger.Info("fetching index page", zap.String("url", e.cfg.StartURL))
	start, err := e.fetchWithRetry(ctx, e.cfg.StartURL)
	if err != nil {
		metrics.FetchErrors.Inc()
		return fmt.Errorf("%w: %s: %w", ErrStartPage, e.cfg.StartURL, err)
	}
	metrics.PagesFetched.Inc()
	e.markVisited(e.cfg.StartURL)
	if err := handle(e.cfg.StartURL, start.Body); err != nil {
		return err
	}

	links, err := DiscoverDetailLinks(e.cfg.StartURL, start.Body)
	if err != nil {
		return fmt.Errorf("%w: discover links: %w", ErrStartPage, err)
	}
	e.logger.Info("discovered detail pages", zap.Int("count", len(links)))

	for _, link := range links {
		if !e.markVisited(link) {
			continue
		}
		if err := e.pause(ctx); err != nil {
			return err
		}
		e.logger.Info("fetching detail page", zap.String("url", link))
		page, err := e.fetchWithRetry(ctx, link)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			metrics.FetchErrors.Inc()
			e.logger.Warn("skipping detail page", zap.String("url", link), zap.Error(err))
			continue
		}
		metrics.PagesFetched.Inc()
		if err := handle(link, page.Body); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) fetchWithRetry(ctx context.Context, rawURL string) (Page, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		page, err := e.fetcher.Fetch(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !e.retry.ShouldRetry(err, attempt) {
			return Page{}, lastErr
		}
		metrics.FetchRetries.Inc()
		e.logger.Warn("retrying fetch",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if err := sleepCtx(ctx, e.retry.Backoff(attempt)); err != nil {
			return Page{}, err
		}
	}
}

// markVisited records the normalized URL and reports whether it was new.
func (e *Engine) markVisited(rawURL string) bool {
	key, err := NormalizeURL(rawURL)
	if err != nil {
		key = rawURL
	}
	if _, ok := e.visited[key]; ok {
		return false
	}
	e.visited[key] = struct{}{}
	return true
}

func (e *Engine) pause(ctx context.Context) error {
	return sleepCtx(ctx, e.cfg.Delay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
