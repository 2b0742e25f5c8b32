// Package scraper coordinates a full case scrape: portal navigation,
// listing extraction and document download, ending in a run summary.
package scraper

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"courtscraper/pkg/config"
	"courtscraper/pkg/downloader"
	"courtscraper/pkg/listing"
	"courtscraper/pkg/logger"
	"courtscraper/pkg/models"
	"courtscraper/pkg/navigator"
	"courtscraper/pkg/portal"
	"courtscraper/pkg/progress"
	"courtscraper/pkg/storage"
)

// Scraper runs complete case scrapes.
type Scraper struct {
	cfg  *config.Config
	log  logger.Logger
	sink progress.Sink
}

// New creates a Scraper with progress reporting disabled.
func New(cfg *config.Config) *Scraper {
	return &Scraper{
		cfg:  cfg,
		log:  logger.GetLogger(),
		sink: progress.NopSink{},
	}
}

// SetProgressSink routes progress events to the given sink.
func (s *Scraper) SetProgressSink(sink progress.Sink) {
	if sink == nil {
		sink = progress.NopSink{}
	}
	s.sink = sink
}

// ScrapeCase scrapes one case end to end. Navigation failure is
// terminal; per-document failures are absorbed into the summary so one
// bad document never aborts the rest of the run. Rerunning the same
// case resumes where the previous run left off, since documents already
// on disk are skipped.
func (s *Scraper) ScrapeCase(ctx context.Context, caseNumber string) (*models.RunSummary, error) {
	log := s.log.WithField("case_number", caseNumber)

	if !portal.IsValidCaseNumber(caseNumber) {
		log.Warn("case number does not match the usual portal format, attempting anyway")
	}

	result, err := navigator.New(s.cfg, s.log, s.sink).Navigate(ctx, caseNumber)
	if err != nil {
		return nil, fmt.Errorf("navigation failed for case %s: %w", caseNumber, err)
	}

	s.sink.Notify(progress.NewEvent(progress.PhaseParsing, 1, 1, "Extracting document listing"))
	docs, err := listing.NewParser(s.log).Parse(result.HTML)
	if err != nil {
		return nil, fmt.Errorf("listing extraction failed for case %s: %w", caseNumber, err)
	}

	if len(docs) == 0 {
		log.Info("case lists no documents")
		return &models.RunSummary{CaseNumber: caseNumber}, nil
	}

	store, err := storage.NewManager(s.caseDirectory(caseNumber))
	if err != nil {
		return nil, err
	}

	summary := downloader.New(s.cfg, store, result.Cookies, s.log, s.sink).DownloadAll(ctx, docs)
	summary.CaseNumber = caseNumber

	if s.cfg.Output.WriteManifest && summary.Downloaded+summary.Secured > 0 {
		if err := WriteManifest(store.Dir()); err != nil {
			log.WithError(err).Warn("manifest could not be written")
		}
	}

	return &summary, nil
}

// caseDirectory maps a case number onto its download directory. Path
// separators in the case number would escape the output root, so they
// are replaced.
func (s *Scraper) caseDirectory(caseNumber string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(caseNumber)
	return filepath.Join(s.cfg.Output.BaseDirectory, safe)
}
