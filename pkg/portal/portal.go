// Package portal holds the fixed constants of the public records portal:
// entry URLs, page markers and the case number format. They are collected
// here so layout drift can be fixed in one place.
package portal

import (
	"net/url"
	"regexp"
)

const (
	// BaseURL is the root of the public access portal.
	BaseURL = "https://publicaccess.galvestoncountytx.gov/PublicAccess/"
	// EntryPage is the landing page relative to BaseURL.
	EntryPage = "default.aspx"

	// RecordsLinkText labels the civil/family records entry point.
	RecordsLinkText = "Civil and Family Case Records"
	// CaseSearchInputID is the element id of the case number search field.
	CaseSearchInputID = "CaseSearchValue"

	// DocumentLinkMarker appears in every document reference link and, when
	// present in a rendered page, marks the document-bearing view.
	DocumentLinkMarker = "ViewDocumentFragment.aspx"
	// NoRecordsMarker appears when a case exists but lists no documents.
	NoRecordsMarker = "No records found"

	// FragmentIDParam is the query parameter carrying the portal-assigned
	// document identifier.
	FragmentIDParam = "DocumentFragmentID"
)

// CaseNumberPattern matches the portal's case number format, e.g.
// "25-CV-0880". Inputs that do not match are still attempted; the
// pattern only drives a warning.
var CaseNumberPattern = regexp.MustCompile(`^\d{2}-[A-Z]{2,3}-\d{3,5}$`)

// IsValidCaseNumber reports whether a case number matches the expected
// portal format.
func IsValidCaseNumber(caseNumber string) bool {
	return CaseNumberPattern.MatchString(caseNumber)
}

// ResolveDocumentURL resolves a listing link, usually relative, against
// the portal base.
func ResolveDocumentURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(ref).String(), nil
}
