// Package crawler retrieves the MKB-10 pages from the source site. It owns
// request pacing, the visited-URL set, and the bounded retry behavior; parsing
// the retrieved HTML lives elsewhere.
package crawler

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// Page is the result of fetching a single URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// Fetcher fetches a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// FetcherConfig controls collector behavior.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// CollyFetcher implements Fetcher using the Colly collector.
type CollyFetcher struct {
	cfg           FetcherConfig
	transport     http.RoundTripper
	baseCollector *colly.Collector
}

// NewCollyFetcher builds a CollyFetcher.
func NewCollyFetcher(cfg FetcherConfig) *CollyFetcher {
	// colly v2.1.0's Async option ignores its argument and always enables
	// async mode; synchronous is the default, so no option is passed.
	c := colly.NewCollector()
	c.IgnoreRobotsTxt = true
	// The Engine keeps its own visited set, and clones share the base
	// collector's visit store, so colly's dedupe must stay off or a failed
	// URL could never be fetched again.
	c.AllowURLRevisit = true
	transport := newHTTPTransport()
	c.WithTransport(transport)
	return &CollyFetcher{
		cfg:           cfg,
		transport:     transport,
		baseCollector: c,
	}
}

// Fetch executes a single HTTP GET using Colly. A non-2xx status surfaces as
// an error, the same as a transport failure.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	var (
		result   Page
		fetchErr error
	)
	collector := f.baseCollector.Clone()
	collector.WithTransport(f.transport)
	collector.AllowURLRevisit = true
	if f.cfg.UserAgent != "" {
		collector.UserAgent = f.cfg.UserAgent
	}
	timeout := f.cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	collector.SetRequestTimeout(timeout)

	collector.OnResponse(func(r *colly.Response) {
		result = Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return Page{}, fmt.Errorf("fetch %s canceled: %w", rawURL, ctx.Err())
	case err := <-done:
		// OnError carries the status code, Visit's own error does not, so
		// prefer the former when both fire.
		if fetchErr != nil {
			return Page{}, fmt.Errorf("fetch %s: %w", rawURL, fetchErr)
		}
		if err != nil {
			return Page{}, fmt.Errorf("visit %s: %w", rawURL, err)
		}
		return result, nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
	}
}
