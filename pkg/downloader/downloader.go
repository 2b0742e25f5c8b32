// Package downloader fetches listed documents over the browser session's
// cookies, classifies each payload and persists genuine documents or
// secured placeholders.
package downloader

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"net/http"

	"github.com/go-resty/resty/v2"

	"courtscraper/pkg/classifier"
	"courtscraper/pkg/config"
	errs "courtscraper/pkg/errors"
	"courtscraper/pkg/logger"
	"courtscraper/pkg/models"
	"courtscraper/pkg/portal"
	"courtscraper/pkg/progress"
	"courtscraper/pkg/ratelimit"
	"courtscraper/pkg/retry"
	"courtscraper/pkg/storage"
)

// Downloader fetches and persists the documents of one case.
type Downloader struct {
	client  *resty.Client
	store   *storage.Manager
	limiter ratelimit.Limiter
	policy  classifier.Policy
	cfg     *config.Config
	log     logger.Logger
	sink    progress.Sink
}

// New creates a Downloader carrying the given session cookies. Document
// URLs only resolve within the session the navigation established, so
// the cookies are not optional.
func New(cfg *config.Config, store *storage.Manager, cookies map[string]string, log logger.Logger, sink progress.Sink) *Downloader {
	if log == nil {
		log = logger.GetLogger()
	}
	if sink == nil {
		sink = progress.NopSink{}
	}

	client := resty.New().
		SetTimeout(cfg.Download.Timeout).
		SetHeader("User-Agent", cfg.Portal.UserAgent).
		SetHeader("Accept", "application/pdf,text/html,application/xhtml+xml,*/*").
		// The portal's certificate chain is broken; matching browser
		// behavior requires accepting it anyway.
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	for name, value := range cookies {
		client.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	return &Downloader{
		client:  client,
		store:   store,
		limiter: ratelimit.NewFixedDelay(cfg.Download.PolitenessDelay),
		policy: classifier.Policy{
			MinSize:      cfg.Download.MinDocumentSize,
			StrictErrors: cfg.Download.StrictErrors,
		},
		cfg:  cfg,
		log:  log,
		sink: sink,
	}
}

// DownloadAll processes every descriptor in listing order, pacing
// requests and skipping documents already on disk. Descriptors are
// updated in place with their terminal status. The returned summary
// omits CaseNumber; the coordinator owns that.
func (d *Downloader) DownloadAll(ctx context.Context, docs []models.DocumentDescriptor) models.RunSummary {
	summary := models.RunSummary{DocumentsFound: len(docs)}

	for i := range docs {
		doc := &docs[i]
		d.sink.Notify(progress.NewEvent(progress.PhaseDownload, doc.Index, len(docs), doc.Filename))

		if ctx.Err() != nil {
			d.log.Warn("download run cancelled")
			break
		}

		if d.store.Exists(doc.Filename) {
			doc.Status = models.StatusSkipped
			summary.Skipped++
			d.log.WithField("filename", doc.Filename).Info("already downloaded, skipping")
			continue
		}

		if err := d.limiter.Wait(ctx); err != nil {
			break
		}

		d.downloadOne(ctx, doc)
		switch doc.Status {
		case models.StatusDownloaded:
			summary.Downloaded++
		case models.StatusSecured:
			summary.Secured++
		default:
			summary.Failed++
		}
	}

	d.log.InfoWithFields("download run complete", map[string]interface{}{
		"found":      summary.DocumentsFound,
		"downloaded": summary.Downloaded,
		"secured":    summary.Secured,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
	})
	return summary
}

// downloadOne fetches a single document with retries and sets the
// descriptor's terminal status.
func (d *Downloader) downloadOne(ctx context.Context, doc *models.DocumentDescriptor) {
	docURL, err := portal.ResolveDocumentURL(d.cfg.Portal.BaseURL, doc.SourceURL)
	if err != nil {
		doc.Status = models.StatusFailed
		d.log.WithError(err).WithField("filename", doc.Filename).Error("unresolvable document link")
		return
	}

	log := d.log.WithField("filename", doc.Filename)
	var lastStatus int

	fetchErr := retry.Do(func() error {
		resp, err := d.client.R().SetContext(ctx).Get(docURL)
		if err != nil {
			return errs.Newf(errs.ErrorTypeTransport, "fetch failed: %v", err)
		}
		lastStatus = resp.StatusCode()

		switch d.policy.Classify(resp.Body(), resp.StatusCode()) {
		case classifier.Secured:
			return errs.Newf(errs.ErrorTypeSecured, "access restricted, status %d", resp.StatusCode())
		case classifier.Error:
			// Any non-secured failure is worth the retry budget: the
			// portal serves transient 404s and error pages while its
			// session state settles.
			if resp.StatusCode() >= 200 && resp.StatusCode() < 300 {
				return errs.Newf(errs.ErrorTypeTransport, "unusable payload of %d bytes", len(resp.Body()))
			}
			return errs.Newf(errs.ErrorTypeTransport, "status %d", resp.StatusCode())
		}

		written, err := d.store.Save(doc.Filename, bytes.NewReader(resp.Body()))
		if err != nil {
			return errs.Newf(errs.ErrorTypeTransport, "save failed: %v", err)
		}
		doc.SizeBytes = written
		return nil
	}, &retry.Config{
		MaxAttempts: d.cfg.Download.RetryAttempts + 1,
		Backoff:     &retry.ConstantBackoff{Delay: d.cfg.Download.RetryDelay},
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      log,
	})

	if fetchErr == nil {
		doc.Status = models.StatusDownloaded
		log.WithField("bytes", doc.SizeBytes).Info("document downloaded")
		return
	}

	var typed *errs.Error
	if errors.As(fetchErr, &typed) && typed.Type == errs.ErrorTypeSecured {
		d.writePlaceholder(doc, lastStatus)
		return
	}

	doc.Status = models.StatusFailed
	log.WithError(fetchErr).Error("document download failed")
}

// writePlaceholder persists a substitute PDF for a secured document.
func (d *Downloader) writePlaceholder(doc *models.DocumentDescriptor, statusCode int) {
	reason := ReasonSecured
	if statusCode == 401 || statusCode == 403 {
		reason = AccessDeniedReason(statusCode)
	}

	written, err := d.store.Save(doc.Filename, bytes.NewReader(PlaceholderBytes(doc.Filename, reason)))
	if err != nil {
		doc.Status = models.StatusFailed
		wrapped := errs.Newf(errs.ErrorTypePlaceholderWrite, "placeholder for %s: %v", doc.Filename, err)
		d.log.WithError(wrapped).Error("failed to write placeholder")
		return
	}

	doc.SizeBytes = written
	doc.Status = models.StatusSecured
	d.log.InfoWithFields("secured document, placeholder written", map[string]interface{}{
		"filename": doc.Filename,
		"reason":   reason,
	})
}
