// Package store delivers report documents to disk and loads them back.
// Reports are written as <dir>/car-sensor-report.csv.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luki/carsensors/internal/report"
)

// FileName is the default name of an exported report.
const FileName = "car-sensor-report.csv"

// DiskStore writes reports into a single output directory.
type DiskStore struct {
	dir  string
	name string
}

// New creates a disk store, creating dir if needed. An empty name
// selects FileName.
func New(dir, name string) (*DiskStore, error) {
	if dir == "" {
		dir = "."
	}
	if name == "" {
		name = FileName
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create output dir: %w", err)
	}
	return &DiskStore{dir: dir, name: name}, nil
}

// Path returns where Export writes.
func (d *DiskStore) Path() string {
	return filepath.Join(d.dir, d.name)
}

// Export writes doc to the report path, replacing any previous report.
// The file is written next to its target and renamed into place so a
// reader never sees a partial report.
func (d *DiskStore) Export(doc string) (string, error) {
	path := d.Path()
	tmp, err := os.CreateTemp(d.dir, "."+d.name+".*")
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		return "", fmt.Errorf("export: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("export: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", fmt.Errorf("export: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("export: rename: %w", err)
	}
	return path, nil
}

// Load reads and parses a report file.
func Load(path string) ([]report.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := report.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
