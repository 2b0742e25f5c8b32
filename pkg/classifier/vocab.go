package classifier

// Marker vocabularies for the content heuristic. Kept as data rather than
// inline literals so they can be tuned without touching control flow.
// Matching is case-insensitive substring membership against the decoded
// payload.

// securedIndicators are phrases that explicitly signal access-restricted
// content.
var securedIndicators = []string{
	"access denied", "access is denied", "unauthorized", "login required",
	"authentication required", "not authorized", "permission denied",
	"sealed", "confidential", "protected", "restricted", "private",
	"secure", "classified", "redacted", "impounded",
	"court sealed", "under seal", "sealed by court",
	"login to view", "sign in required", "authentication needed",
	"forbidden", "401", "403", "not permitted",
}

// siteContextIndicators identify a payload as coming from the court
// system itself rather than some unrelated error source.
var siteContextIndicators = []string{
	"publicaccess", "galveston", "court", "justice", "clerk",
	"case", "document", "filing", "docket",
}

// redirectIndicators suggest a protective redirect, session or
// availability page in place of the requested document.
var redirectIndicators = []string{
	"login", "authentication", "redirect", "session", "timeout",
	"not authorized", "restricted", "unavailable", "protected",
	"not available", "access denied", "permission denied",
	"this document is", "cannot be displayed", "cannot be viewed",
	"error", "expired", "invalid request", "forbidden",
}

// htmlIndicators mark textual HTML or error content embedded in what
// should be a binary document.
var htmlIndicators = []string{
	"<html", "<body", "<head", "content-type: text/html", "error", "exception",
}
