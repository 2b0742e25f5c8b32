package scraper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"courtscraper/pkg/config"
	"courtscraper/pkg/downloader"
)

func TestCaseDirectory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.BaseDirectory = "/data/downloads"
	s := New(cfg)

	tests := []struct {
		caseNumber string
		want       string
	}{
		{"25-CV-0880", filepath.Join("/data/downloads", "25-CV-0880")},
		{"25/CV/0880", filepath.Join("/data/downloads", "25_CV_0880")},
		{`25\CV\0880`, filepath.Join("/data/downloads", "25_CV_0880")},
	}
	for _, test := range tests {
		if got := s.caseDirectory(test.caseNumber); got != test.want {
			t.Errorf("caseDirectory(%q) = %q, want %q", test.caseNumber, got, test.want)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()

	placeholder := downloader.PlaceholderBytes("2025.01.15_Sealed.pdf", downloader.ReasonSecured)
	if err := os.WriteFile(filepath.Join(dir, "2025.01.15_Sealed.pdf"), placeholder, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "2025.02.03_Order.pdf"), []byte("not really a pdf"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteManifest(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		t.Fatal(err)
	}
	manifest := string(data)

	if !strings.Contains(manifest, "2025.01.15_Sealed.pdf") {
		t.Error("manifest missing placeholder document")
	}
	if !strings.Contains(manifest, "2025.02.03_Order.pdf") {
		t.Error("manifest missing second document")
	}
	if strings.Contains(manifest, "notes.txt") {
		t.Error("manifest should only list PDFs")
	}
	if !strings.Contains(manifest, "2 documents") {
		t.Error("manifest missing document count")
	}
	// The fake PDF cannot be parsed, so its line carries no page count.
	for _, line := range strings.Split(manifest, "\n") {
		if strings.HasPrefix(line, "2025.02.03_Order.pdf") && strings.Contains(line, "pages") {
			t.Error("unparsable file should not report a page count")
		}
	}
}

func TestWriteManifestEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "0 documents") {
		t.Error("empty manifest missing zero count")
	}
}
