// Package navigator drives a headless browser through the portal's
// seven-stage search sequence and hands back the rendered document
// listing together with the session cookies.
//
// The portal is an ASP.NET application that rejects direct deep links;
// every stage depends on server-side state established by the previous
// one, so the sequence always runs from the entry page. Stage six
// repeats the case-link click on the detail page, which is what makes
// the document list render at all.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	cdpstorage "github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"courtscraper/pkg/config"
	errs "courtscraper/pkg/errors"
	"courtscraper/pkg/logger"
	"courtscraper/pkg/portal"
	"courtscraper/pkg/progress"
	"courtscraper/pkg/retry"
)

// StageCount is the number of stages in the navigation sequence.
const StageCount = 7

// StageMessages labels each navigation stage for progress reporting.
var StageMessages = [StageCount]string{
	"Opening portal entry page",
	"Selecting case records search",
	"Choosing case number search mode",
	"Submitting case number",
	"Opening case detail page",
	"Loading document listing",
	"Capturing page and session",
}

// Result carries everything later phases need from the browser session.
type Result struct {
	// HTML is the fully rendered document listing page.
	HTML string
	// Cookies is the browser session, keyed by cookie name. Downloads
	// reuse it so document requests ride the established session.
	Cookies map[string]string
}

// Navigator runs the portal search sequence.
type Navigator struct {
	cfg  *config.Config
	log  logger.Logger
	sink progress.Sink
}

// New creates a Navigator. A nil sink disables progress reporting.
func New(cfg *config.Config, log logger.Logger, sink progress.Sink) *Navigator {
	if log == nil {
		log = logger.GetLogger()
	}
	if sink == nil {
		sink = progress.NopSink{}
	}
	return &Navigator{cfg: cfg, log: log, sink: sink}
}

// Navigate runs the full sequence for a case number, retrying the whole
// sequence on failure. Each attempt starts from a fresh browser because
// the portal's server-side state cannot be resumed mid-sequence.
func (n *Navigator) Navigate(ctx context.Context, caseNumber string) (*Result, error) {
	cfg := &retry.Config{
		MaxAttempts: n.cfg.Navigation.MaxRetries + 1,
		Backoff:     &retry.ConstantBackoff{Delay: n.cfg.Navigation.RetryCooldown},
		RetryIf: func(err error) bool {
			return !errors.Is(err, context.Canceled)
		},
		Context: ctx,
		Logger:  n.log,
	}

	return retry.DoWithResult(func() (*Result, error) {
		return n.attempt(ctx, caseNumber)
	}, cfg)
}

// attempt runs the sequence once in a fresh browser.
func (n *Navigator) attempt(ctx context.Context, caseNumber string) (*Result, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", n.cfg.Portal.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(n.cfg.Portal.UserAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	long := n.cfg.Navigation.StageTimeout
	short := n.cfg.Navigation.ShortStageTimeout
	caseLink := fmt.Sprintf(`//a[contains(text(), '%s')]`, caseNumber)

	// Stage 1: load the entry page.
	if err := n.runStage(browserCtx, 1, long,
		chromedp.Navigate(n.cfg.Portal.BaseURL+portal.EntryPage),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, err
	}

	// Stage 2: follow the case records link to the search page.
	if err := n.runStage(browserCtx, 2, long,
		chromedp.Click(fmt.Sprintf(`//a[contains(text(), '%s')]`, portal.RecordsLinkText), chromedp.BySearch),
		chromedp.WaitVisible(`//input[@type='radio']`, chromedp.BySearch),
	); err != nil {
		return nil, err
	}

	// Stage 3: switch the search form to case-number mode. The form
	// rebuilds itself after the radio click, hence the settle pause.
	if err := n.runStage(browserCtx, 3, short,
		chromedp.Click(`//input[@type='radio' and contains(@id, 'Case')]`, chromedp.BySearch),
		chromedp.Sleep(time.Second),
	); err != nil {
		return nil, err
	}

	// Stage 4: type the case number and submit with Enter.
	if err := n.runStage(browserCtx, 4, long,
		chromedp.WaitVisible("#"+portal.CaseSearchInputID, chromedp.ByQuery),
		chromedp.Clear("#"+portal.CaseSearchInputID, chromedp.ByQuery),
		chromedp.SendKeys("#"+portal.CaseSearchInputID, caseNumber+kb.Enter, chromedp.ByQuery),
		chromedp.WaitVisible(caseLink, chromedp.BySearch),
	); err != nil {
		return nil, err
	}

	// Stage 5: open the case detail page.
	if err := n.runStage(browserCtx, 5, long,
		chromedp.Click(caseLink, chromedp.BySearch),
		pollForText(caseNumber),
	); err != nil {
		return nil, err
	}

	// Stage 6: click the case link again on the detail page. This second
	// click is what triggers the document listing render.
	if err := n.runStage(browserCtx, 6, long,
		chromedp.Click(caseLink, chromedp.BySearch),
		pollForText(portal.DocumentLinkMarker, portal.NoRecordsMarker),
	); err != nil {
		return nil, err
	}

	// Stage 7: capture the rendered page and the session cookies.
	var html string
	cookies := make(map[string]string)
	if err := n.runStage(browserCtx, 7, short,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			cs, err := cdpstorage.GetCookies().Do(ctx)
			if err != nil {
				return err
			}
			cookies = cookieMap(cs)
			return nil
		}),
	); err != nil {
		return nil, err
	}

	if err := ValidateDocumentPage(html); err != nil {
		return nil, err
	}

	n.log.InfoWithFields("navigation sequence complete", map[string]interface{}{
		"case_number": caseNumber,
		"cookies":     len(cookies),
		"page_bytes":  len(html),
	})
	return &Result{HTML: html, Cookies: cookies}, nil
}

// runStage executes one stage's actions under its own timeout and maps
// failures to stage-scoped errors.
func (n *Navigator) runStage(ctx context.Context, stage int, timeout time.Duration, actions ...chromedp.Action) error {
	message := StageMessages[stage-1]
	n.sink.Notify(progress.NewEvent(progress.PhaseNavigation, stage, StageCount, message))
	n.log.WithField("stage", stage).Debug(message)

	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := chromedp.Run(stageCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errs.NewStage(errs.ErrorTypeNavigationTimeout, stage, "%s did not complete within %v", message, timeout)
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		return errs.NewStage(errs.ErrorTypeUnknown, stage, "%s failed: %v", message, err)
	}
	return nil
}

// ValidateDocumentPage checks that a captured page is a usable document
// listing. A page with document links or an explicit no-records notice
// is valid; anything else means the sequence landed somewhere wrong.
func ValidateDocumentPage(html string) error {
	if strings.Contains(html, portal.DocumentLinkMarker) {
		return nil
	}
	if strings.Contains(html, portal.NoRecordsMarker) {
		return nil
	}
	return errs.NewStage(errs.ErrorTypeUnexpectedContent, 6, "page contains neither document links nor a no-records notice")
}

// pollForText waits until the rendered page contains any of the given
// substrings.
func pollForText(substrings ...string) chromedp.Action {
	var checks []string
	for _, s := range substrings {
		checks = append(checks, fmt.Sprintf("document.documentElement.outerHTML.includes(%q)", s))
	}
	var found bool
	return chromedp.Poll(strings.Join(checks, " || "), &found)
}

// cookieMap flattens browser cookies into name/value pairs.
func cookieMap(cookies []*network.Cookie) map[string]string {
	m := make(map[string]string, len(cookies))
	for _, c := range cookies {
		m[c.Name] = c.Value
	}
	return m
}
