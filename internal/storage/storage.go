// Package storage persists the working report to local disk so a
// restart resumes where the author left off. Writes go through a temp
// file and rename so a crash mid-write never truncates the saved copy.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mlevasseur/reportforge/internal/report"
)

const fileName = "report.json"

// Local saves and loads the working report under a data directory.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Save writes the report blob atomically.
func (l *Local) Save(blob *report.Blob) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(blob, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tmp, err := os.CreateTemp(l.dir, fileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(l.dir, fileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace report file: %w", err)
	}
	return nil
}

// Load reads the saved report blob. Returns nil, nil when nothing has
// been saved yet.
func (l *Local) Load() (*report.Blob, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, fileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	blob, err := report.ImportBlob(data)
	if err != nil {
		return nil, fmt.Errorf("saved report is corrupt: %w", err)
	}
	return blob, nil
}
