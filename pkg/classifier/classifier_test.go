package classifier

import (
	"bytes"
	"strings"
	"testing"
)

// pdfBody builds a payload that starts with the PDF signature and is
// padded with binary-looking filler to the requested size.
func pdfBody(size int) []byte {
	body := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	for len(body) < size {
		body = append(body, 0x01, 0x02, 0x03, 0x04)
	}
	return body[:size]
}

func TestClassifyStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
		want   Outcome
	}{
		{"401 is secured regardless of body", 401, pdfBody(4096), Secured},
		{"403 is secured regardless of body", 403, []byte("whatever"), Secured},
		{"403 with empty body", 403, nil, Secured},
		{"500 is an error", 500, pdfBody(4096), Error},
		{"404 is an error", 404, nil, Error},
		{"302 is an error", 302, []byte("redirecting"), Error},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.body, test.status); got != test.want {
				t.Errorf("Classify = %v, want %v", got, test.want)
			}
		})
	}
}

func TestClassifySmallPayloads(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		want Outcome
	}{
		{"empty body", nil, Error},
		{"tiny unrecognizable payload", []byte(strings.Repeat("x", 50)), Error},
		{"tiny payload with secured language", []byte("Access Denied - this document is sealed"), Secured},
		{"1023 bytes is small", pdfBody(1023)[:1023], Error},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.body, 200); got != test.want {
				t.Errorf("Classify = %v, want %v", got, test.want)
			}
		})
	}
}

func TestClassifyThresholdIsExclusive(t *testing.T) {
	// Exactly 1024 bytes of clean PDF must be treated as "not small".
	body := pdfBody(1024)
	if len(body) != 1024 {
		t.Fatalf("fixture size = %d", len(body))
	}
	if got := Classify(body, 200); got != Genuine {
		t.Errorf("Classify(1024-byte PDF) = %v, want %v", got, Genuine)
	}
}

func TestClassifyGenuinePDF(t *testing.T) {
	if got := Classify(pdfBody(4096), 200); got != Genuine {
		t.Errorf("Classify = %v, want %v", got, Genuine)
	}
}

func TestClassifyNonPDFText(t *testing.T) {
	pad := strings.Repeat(" ", 1100)

	tests := []struct {
		name string
		body string
		want Outcome
	}{
		{
			"explicit secured language",
			"<html><body>This document is SEALED by court order</body></html>" + pad,
			Secured,
		},
		{
			"court context page defaults to secured",
			"<html><title>PublicAccess</title><p>The requested filing could not be shown</p></html>" + pad,
			Secured,
		},
		{
			"redirect page defaults to secured",
			"<html><p>Your session has expired, please try again</p></html>" + pad,
			Secured,
		},
		{
			"context-free large payload is an error",
			strings.Repeat("zzzz ", 300),
			Error,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify([]byte(test.body), 200); got != test.want {
				t.Errorf("Classify = %v, want %v", got, test.want)
			}
		})
	}
}

func TestClassifyPDFWithEmbeddedHTML(t *testing.T) {
	body := append(pdfBody(1100), []byte("<html><body>this filing is confidential</body></html>")...)
	if got := Classify(body, 200); got != Secured {
		t.Errorf("Classify = %v, want %v", got, Secured)
	}

	// Embedded HTML without any secured or court context is an error.
	junk := append([]byte("%PDF-1.4 "), bytes.Repeat([]byte("q "), 600)...)
	junk = append(junk, []byte("<html><body>zzzz</body></html>")...)
	if got := Classify(junk, 200); got != Error {
		t.Errorf("Classify = %v, want %v", got, Error)
	}
}

func TestStrictErrorsPolicy(t *testing.T) {
	pad := strings.Repeat(" ", 1100)
	contextOnly := []byte("<html><title>County Court Records</title><p>filing unavailable</p></html>" + pad)

	if got := Classify(contextOnly, 200); got != Secured {
		t.Errorf("default policy: Classify = %v, want %v", got, Secured)
	}

	strict := Policy{StrictErrors: true}
	if got := strict.Classify(contextOnly, 200); got != Error {
		t.Errorf("strict policy: Classify = %v, want %v", got, Error)
	}

	// Explicit secured language still wins under the strict policy.
	sealed := []byte("<html><p>document sealed by court</p></html>" + pad)
	if got := strict.Classify(sealed, 200); got != Secured {
		t.Errorf("strict policy: Classify = %v, want %v", got, Secured)
	}
}
