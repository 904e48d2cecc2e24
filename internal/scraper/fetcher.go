// Package scraper handles page fetching for the card-list crawl.
//
// Fetchers only retrieve markup. Turning markup into card data is the job
// of the page schema (internal/schema), so a site redesign never touches
// this package.
package scraper

import (
	"context"
	"fmt"
	"time"
)

// PageContent is the raw result of fetching one URL.
type PageContent struct {
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
}

// FetchOptions controls a single fetch.
type FetchOptions struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts FetchOptions) (PageContent, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// Mode selects the fetching strategy.
type Mode string

const (
	ModeStatic  Mode = "static"
	ModeDynamic Mode = "dynamic"
)

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
	// Headers are sent with every request on top of the User-Agent.
	Headers map[string]string
}

// DefaultConfig returns defaults matching what the card site accepts. The
// site rejects obviously non-browser user agents, hence the Chrome string.
func DefaultConfig() Config {
	return Config{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
		Timeout:   30 * time.Second,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

// New creates a fetcher for the given mode.
func New(mode Mode, cfg Config) (Fetcher, error) {
	switch mode {
	case ModeStatic:
		return NewStaticFetcher(cfg), nil
	case ModeDynamic:
		return NewDynamicFetcher(cfg)
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", mode)
	}
}

// FetchError reports a failed page fetch: transport failure, timeout or a
// non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
