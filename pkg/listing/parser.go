// Package listing converts the rendered document-list page into ordered
// document descriptors with collision-free filenames.
package listing

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	errs "courtscraper/pkg/errors"
	"courtscraper/pkg/logger"
	"courtscraper/pkg/models"
	"courtscraper/pkg/portal"
)

var (
	dateRe       = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	fragmentIDRe = regexp.MustCompile(portal.FragmentIDParam + `=(\d+)`)
)

// Parser extracts document descriptors from a rendered listing page.
// A Parser carries the run-scoped name registry and must not be reused
// across cases.
type Parser struct {
	names *NameRegistry
	log   logger.Logger
}

// NewParser creates a parser for one scrape run.
func NewParser(log logger.Logger) *Parser {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Parser{
		names: NewNameRegistry(),
		log:   log,
	}
}

// Parse scans the page for document-reference links and builds one
// descriptor per usable table row. A malformed row is logged and
// skipped; it never aborts the listing.
func (p *Parser) Parse(html string) ([]models.DocumentDescriptor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "unreadable listing page: %v", err)
	}

	var descriptors []models.DocumentDescriptor
	selector := fmt.Sprintf("a[href*=%q]", portal.DocumentLinkMarker)

	doc.Find(selector).Each(func(i int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		desc, err := p.parseRow(link, href)
		if err != nil {
			p.log.WithError(err).WithField("link_index", i+1).Warn("skipping unparsable listing row")
			return
		}
		if desc == nil {
			// Non-document row, e.g. a header or service entry.
			return
		}

		desc.Index = len(descriptors) + 1
		descriptors = append(descriptors, *desc)
	})

	p.log.WithField("documents", len(descriptors)).Info("parsed document listing")
	return descriptors, nil
}

// parseRow builds a descriptor from one document link and its enclosing
// table row. It returns (nil, nil) for rows that are legitimately not
// document entries.
func (p *Parser) parseRow(link *goquery.Selection, href string) (*models.DocumentDescriptor, error) {
	row := link.Closest("tr")
	if row.Length() == 0 {
		return nil, nil
	}

	firstCell := row.Find("td").First()
	if firstCell.Length() == 0 {
		return nil, nil
	}
	cellText := firstCell.Text()

	// The portal mixes non-document rows into the table; only rows whose
	// first cell carries a filing date describe documents.
	loc := dateRe.FindStringIndex(cellText)
	if loc == nil {
		return nil, nil
	}
	date, err := time.Parse("01/02/2006", cellText[loc[0]:loc[1]])
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "bad filing date %q: %v", cellText[loc[0]:loc[1]], err)
	}

	docType := cleanLabel(cellText[loc[1]:])
	linkText := cleanLabel(link.Text())

	// Prefer the longer, more descriptive label; ties go to the cell.
	displayName := docType
	if len(linkText) > len(docType) && linkText != docType {
		displayName = linkText
	}
	if strings.HasSuffix(strings.ToLower(displayName), ".pdf") {
		displayName = displayName[:len(displayName)-4]
	}

	fragmentID := "unknown"
	if m := fragmentIDRe.FindStringSubmatch(href); m != nil {
		fragmentID = m[1]
	}

	return &models.DocumentDescriptor{
		Filename:    p.names.Reserve(date, displayName, fragmentID),
		SourceURL:   href,
		FragmentID:  fragmentID,
		Date:        date,
		DisplayName: displayName,
		DocType:     docType,
		Status:      models.StatusPending,
	}, nil
}

// cleanLabel normalizes whitespace and strips non-breaking-space
// artifacts from listing text.
func cleanLabel(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
