package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ManifestFilename is the per-case inventory written next to the
// downloaded documents.
const ManifestFilename = "MANIFEST.txt"

// WriteManifest inventories every PDF in the directory with its size
// and, when the file parses, its page count. An unparsable PDF is still
// listed, just without pages; placeholders and genuine documents alike
// belong in the inventory.
func WriteManifest(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Document manifest\nGenerated: %s\n\n", time.Now().Format(time.RFC3339))

	var total int64
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		total += info.Size()

		line := fmt.Sprintf("%s\t%d bytes", name, info.Size())
		if pages, err := api.PageCountFile(path); err == nil {
			line += fmt.Sprintf("\t%d pages", pages)
		}
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n%d documents, %d bytes total\n", len(names), total)
	return os.WriteFile(filepath.Join(dir, ManifestFilename), []byte(b.String()), 0644)
}
