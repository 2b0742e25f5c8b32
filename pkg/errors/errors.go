package errors

import "fmt"

// ErrorType classifies failures so callers can decide on retry and
// reporting without string matching.
type ErrorType string

const (
	// ErrorTypeNavigationTimeout means a navigation wait condition was not
	// met in time. Retried at the full-sequence level.
	ErrorTypeNavigationTimeout ErrorType = "navigation_timeout"
	// ErrorTypeUnexpectedContent means the final navigation stage rendered
	// a page matching neither success marker.
	ErrorTypeUnexpectedContent ErrorType = "unexpected_content"
	// ErrorTypeParsing means a listing row or page could not be parsed.
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeTransport covers network failures and unusable payloads
	// during a document fetch. Retried per document.
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeSecured marks access-restricted content. Not a failure, but
	// carried as an error type so it short-circuits retry loops.
	ErrorTypeSecured ErrorType = "secured"
	// ErrorTypePlaceholderWrite means the placeholder for a secured
	// document could not be written to disk.
	ErrorTypePlaceholderWrite ErrorType = "placeholder_write"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// Error is a typed scraper error with an optional navigation stage.
type Error struct {
	Type    ErrorType
	Message string
	// Stage is the 1-based navigation stage where the failure occurred,
	// zero when not stage-scoped.
	Stage int
}

func (e *Error) Error() string {
	if e.Stage > 0 {
		return fmt.Sprintf("%s error at stage %d: %s", e.Type, e.Stage, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// New creates a typed error.
func New(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

// Newf creates a typed error with a formatted message.
func Newf(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// NewStage creates a typed error scoped to a navigation stage.
func NewStage(t ErrorType, stage int, format string, args ...interface{}) *Error {
	return &Error{Type: t, Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// IsRetryable reports whether an error type is worth another attempt.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeTransport, ErrorTypeNavigationTimeout, ErrorTypeUnknown:
		return true
	case ErrorTypeSecured, ErrorTypeParsing, ErrorTypePlaceholderWrite:
		return false
	default:
		return false
	}
}
