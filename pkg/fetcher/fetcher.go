package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Fetcher retrieves pages and parses them into queryable documents.
// Any transport failure, non-2xx status, or parse failure is logged and
// surfaced as an error; callers treat an error as "no document" and move
// on. No caching, no retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// New creates a Fetcher with the given user agent and request timeout.
func New(userAgent string, timeout time.Duration, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Client exposes the underlying HTTP client so the robots check can
// share its timeout settings.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// UserAgent returns the configured User-Agent header value.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// Fetch issues a GET for the given absolute URL and returns the parsed
// document. The body is decoded according to the response Content-Type
// before parsing.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		f.logger.Warn("building request failed", zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("building request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("fetch failed", zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("fetch returned error status",
			zap.String("url", pageURL), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		f.logger.Warn("charset detection failed", zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("decoding %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		f.logger.Warn("parsing page failed", zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("parsing %s: %w", pageURL, err)
	}
	return doc, nil
}
