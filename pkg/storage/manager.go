// Package storage persists downloaded documents on the local filesystem
// and answers which filenames already exist in the target directory.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Manager owns one case's download directory. Saves are atomic: content
// is written to a temp file and renamed into place, so an interrupted
// run never leaves a truncated document behind.
type Manager struct {
	dir string

	mu       sync.Mutex
	existing map[string]bool
}

// NewManager creates the directory if needed and indexes the documents
// already present, so reruns can skip completed work.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	existing := make(map[string]bool)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			existing[entry.Name()] = true
		}
	}

	return &Manager{dir: dir, existing: existing}, nil
}

// Dir returns the managed directory.
func (m *Manager) Dir() string { return m.dir }

// Path returns the full path for a filename within the directory.
func (m *Manager) Path(filename string) string {
	return filepath.Join(m.dir, filename)
}

// Exists reports whether a document with this filename is already on
// disk from this run or an earlier one.
func (m *Manager) Exists(filename string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existing[filename]
}

// Save writes a document atomically and records it as existing. It
// returns the number of bytes written.
func (m *Manager) Save(filename string, content io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(m.dir, ".download-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to write %s: %w", filename, err)
	}

	finalPath := m.Path(filename)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to finalize %s: %w", filename, err)
	}

	m.mu.Lock()
	m.existing[filename] = true
	m.mu.Unlock()

	return written, nil
}
