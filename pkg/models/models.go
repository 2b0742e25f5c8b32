package models

import "time"

// Status is the lifecycle state of a document descriptor. A descriptor
// starts pending and moves to exactly one terminal state during download.
type Status string

const (
	StatusPending    Status = "pending"
	StatusDownloaded Status = "downloaded"
	StatusSecured    Status = "secured"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// DocumentDescriptor describes one document found in a case listing,
// prior to download. Descriptors are scoped to a single scrape run and
// are never persisted.
type DocumentDescriptor struct {
	// Index is the 1-based position in the parsed listing.
	Index int
	// Filename is unique within a run, enforced by the listing parser's
	// name registry.
	Filename string
	// SourceURL is the relative link taken from the listing page.
	SourceURL string
	// FragmentID is the portal-assigned numeric token from the link,
	// "unknown" when the link carries none.
	FragmentID string
	// Date is the filing date parsed from the listing row.
	Date time.Time
	// DisplayName is the cleaned human label for the document.
	DisplayName string
	// DocType is the raw classification text from the listing row.
	DocType string
	// SizeBytes is populated after download.
	SizeBytes int64
	Status    Status
}

// RunSummary aggregates the outcome of one case scrape. It is produced
// once per ScrapeCase invocation and not mutated afterwards.
type RunSummary struct {
	CaseNumber     string
	DocumentsFound int
	Downloaded     int
	Secured        int
	Failed         int
	Skipped        int
}
