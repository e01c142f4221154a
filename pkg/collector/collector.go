package collector

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/amosWeiskopf/facultyharvest/internal/models"
	"github.com/amosWeiskopf/facultyharvest/pkg/fetcher"
)

// Collector gathers profile links from the directory index page.
type Collector struct {
	fetcher *fetcher.Fetcher
	baseURL string
	pattern string
	logger  *zap.Logger
}

// New creates a Collector. pattern is matched case-insensitively as a
// substring of each anchor href; matching hrefs are resolved against
// baseURL.
func New(f *fetcher.Fetcher, baseURL, pattern string, logger *zap.Logger) *Collector {
	return &Collector{
		fetcher: f,
		baseURL: baseURL,
		pattern: strings.ToLower(pattern),
		logger:  logger,
	}
}

// Collect fetches the index page and returns the resolved profile
// links in document order. Duplicates and self-references are kept.
// A failed fetch yields a nil set.
func (c *Collector) Collect(ctx context.Context, indexURL string) models.LinkSet {
	doc, err := c.fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		c.logger.Error("invalid base URL", zap.String("base", c.baseURL), zap.Error(err))
		return nil
	}

	var links models.LinkSet
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(strings.ToLower(href), c.pattern) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			c.logger.Debug("skipping unparsable href", zap.String("href", href))
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})

	c.logger.Info("collected profile links",
		zap.String("index", indexURL), zap.Int("count", len(links)))
	return links
}
