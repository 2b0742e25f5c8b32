package listing

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// maxFilenameLength bounds generated filenames, extension included.
const maxFilenameLength = 120

var (
	invalidCharsRe = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// sanitizeName strips path-hostile characters and collapses whitespace,
// truncating so the final date-prefixed filename stays within bounds.
func sanitizeName(name string) string {
	name = invalidCharsRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))

	// "YYYY.MM.DD_" prefix plus ".pdf" extension leave this much room.
	maxLen := maxFilenameLength - len("2006.01.02_") - len(".pdf")
	if len(name) > maxLen {
		name = strings.TrimSpace(name[:maxLen])
	}
	return name
}

// NameRegistry hands out filenames that are unique within one scrape run.
// Names are registered at generation time so the uniqueness check stays
// correct across the whole listing.
type NameRegistry struct {
	used map[string]bool
}

// NewNameRegistry creates an empty run-scoped registry.
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{used: make(map[string]bool)}
}

// Reserve generates and registers a unique filename for a document.
// Collisions first get a fragment-id suffix, then a numeric counter.
// The base is re-trimmed whenever a suffix is appended so the length
// bound holds for disambiguated names too.
func (r *NameRegistry) Reserve(date time.Time, displayName, fragmentID string) string {
	base := fmt.Sprintf("%s_%s", date.Format("2006.01.02"), sanitizeName(displayName))
	name := base + ".pdf"

	if r.used[name] {
		name = withSuffix(base, fmt.Sprintf("_(ID%s)", fragmentID))
		for counter := 1; r.used[name]; counter++ {
			name = withSuffix(base, fmt.Sprintf("_(ID%s)_%d", fragmentID, counter))
		}
	}

	r.used[name] = true
	return name
}

// withSuffix appends a disambiguation suffix and the extension,
// trimming the base as needed to stay within maxFilenameLength.
func withSuffix(base, suffix string) string {
	maxBase := maxFilenameLength - len(suffix) - len(".pdf")
	if len(base) > maxBase {
		base = strings.TrimSpace(base[:maxBase])
	}
	return base + suffix + ".pdf"
}
