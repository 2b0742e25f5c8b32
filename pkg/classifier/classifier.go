// Package classifier decides whether a downloaded byte payload is a
// genuine document, a secured/sealed substitute, or an error page. The
// portal returns well-formed HTML rather than a clean 403 for protected
// filings, so no single signal is reliable: the decision combines
// transport status, payload size, magic bytes and keyword heuristics.
package classifier

import (
	"bytes"
	"strings"
)

// Outcome is the classification result for one payload.
type Outcome string

const (
	Genuine Outcome = "genuine"
	Secured Outcome = "secured"
	Error   Outcome = "error"
)

// pdfSignature is the canonical leading bytes of a PDF document.
var pdfSignature = []byte("%PDF-")

// DefaultMinSize is the payload size below which content is treated as a
// likely error or interstitial page. The threshold is exclusive: a
// payload of exactly this size is "not small".
const DefaultMinSize = 1024

// Policy tunes the classification heuristic.
type Policy struct {
	// MinSize overrides DefaultMinSize when positive.
	MinSize int
	// StrictErrors disables the default rule that HTML carrying court or
	// redirect context classifies as secured. With it set, only explicit
	// secured language yields Secured; ambiguous HTML becomes Error. The
	// permissive default exists because sensitive case types are
	// non-public by default, and an HTML page in place of a PDF is far
	// more often a protective redirect than a broken server.
	StrictErrors bool
}

// Classify applies the default policy.
func Classify(body []byte, statusCode int) Outcome {
	return Policy{}.Classify(body, statusCode)
}

// Classify inspects a payload and its HTTP status. Pure and
// deterministic, no I/O.
func (p Policy) Classify(body []byte, statusCode int) Outcome {
	// Transport status first: an explicit denial needs no byte inspection.
	if statusCode == 401 || statusCode == 403 {
		return Secured
	}
	if statusCode < 200 || statusCode >= 300 {
		return Error
	}

	minSize := p.MinSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}

	text := strings.ToLower(string(body))

	if len(body) < minSize {
		if len(body) > 0 && containsAny(text, securedIndicators) {
			return Secured
		}
		return Error
	}

	if !bytes.HasPrefix(body, pdfSignature) {
		return p.classifyText(text)
	}

	// A PDF header with HTML or error text embedded in it gets the same
	// secured-vs-context test as a plain non-PDF payload.
	if containsAny(text, htmlIndicators) {
		return p.classifyText(text)
	}

	return Genuine
}

// classifyText decides between Secured and Error for textual payloads.
func (p Policy) classifyText(text string) Outcome {
	if containsAny(text, securedIndicators) {
		return Secured
	}
	if !p.StrictErrors {
		if containsAny(text, siteContextIndicators) || containsAny(text, redirectIndicators) {
			return Secured
		}
	}
	return Error
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
