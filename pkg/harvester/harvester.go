package harvester

import (
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/amosWeiskopf/facultyharvest/internal/config"
	"github.com/amosWeiskopf/facultyharvest/internal/models"
	"github.com/amosWeiskopf/facultyharvest/pkg/collector"
	"github.com/amosWeiskopf/facultyharvest/pkg/extractor"
	"github.com/amosWeiskopf/facultyharvest/pkg/fetcher"
)

// Harvester runs the linear pipeline: collect profile links from the
// index page, fetch each profile, extract its fields, and write one CSV
// row per profile that yields a name. Fully sequential, one pass, no
// retries. Profiles that fail to fetch or lack a name are skipped
// silently beyond a log line.
type Harvester struct {
	cfg       config.HarvestConfig
	fetcher   *fetcher.Fetcher
	collector *collector.Collector
	logger    *zap.Logger
}

// New creates a Harvester.
func New(cfg config.HarvestConfig, f *fetcher.Fetcher, logger *zap.Logger) *Harvester {
	return &Harvester{
		cfg:       cfg,
		fetcher:   f,
		collector: collector.New(f, cfg.BaseURL, cfg.LinkPattern, logger),
		logger:    logger,
	}
}

// Harvest crawls the configured index page and writes the CSV to
// filename. It returns the number of data rows written. Only failure
// to create the output file is an error; per-profile failures are
// logged and omitted.
func (h *Harvester) Harvest(ctx context.Context, filename string) (int, error) {
	links := h.collector.Collect(ctx, h.cfg.IndexURL)

	out, err := os.Create(filename)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", filename, err)
	}
	defer out.Close()

	fmt.Fprintln(out, models.CSVHeader)

	// The first collected link is the directory's self-reference, not a
	// person, so harvesting starts at the second entry.
	start := 0
	if h.cfg.SkipFirstLink && len(links) > 0 {
		start = 1
	}

	written := 0
	for _, link := range links[start:] {
		record, ok := h.profile(ctx, link)
		if !ok {
			continue
		}
		fmt.Fprintln(out, record.Row())
		written++
	}

	h.logger.Info("harvest complete",
		zap.String("output", filename),
		zap.Int("links", len(links)),
		zap.Int("rows", written))
	return written, nil
}

// profile fetches one profile page and extracts its fields. ok is
// false when the page could not be fetched or carries no name.
func (h *Harvester) profile(ctx context.Context, link string) (models.ProfileRecord, bool) {
	doc, err := h.fetcher.Fetch(ctx, link)
	if err != nil {
		return models.ProfileRecord{}, false
	}
	return Extract(doc, link, h.logger)
}

// Extract pulls all profile fields out of a parsed page.
func Extract(doc *goquery.Document, link string, logger *zap.Logger) (models.ProfileRecord, bool) {
	last, first, ok := extractor.Name(doc)
	if !ok {
		logger.Info("no name found, skipping profile", zap.String("url", link))
		return models.ProfileRecord{}, false
	}
	return models.ProfileRecord{
		LastName:  last,
		FirstName: first,
		Email:     extractor.Email(doc),
		Phone:     extractor.Phone(doc),
		Education: extractor.Education(doc),
	}, true
}
