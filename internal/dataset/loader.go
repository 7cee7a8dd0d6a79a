package dataset

import (
	"fmt"
	"path/filepath"
)

// Options controls how files are turned into datasets.
type Options struct {
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, sniffed from the extension and header line.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; SheetIndex (1-based) is used otherwise.
	Sheet      string
	SheetIndex int
	Parse      ParseOptions
}

// DefaultOptions returns reasonable defaults for dataset loading.
func DefaultOptions() Options {
	return Options{MaxRows: 100000, SheetIndex: 1}
}

// Loader reads one file format into a Dataset.
type Loader interface {
	CanLoad(path string) bool
	Load(path string, opt Options) (*Dataset, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// LoadFile selects a loader based on the file name.
func LoadFile(path string, opt Options) (*Dataset, error) {
	for _, l := range registry {
		if l.CanLoad(path) {
			ds, err := l.Load(path, opt)
			if err != nil {
				return nil, err
			}
			if ds.Width() == 0 {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmpty)
			}
			return ds, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

func truncate(rows [][]string, maxRows int) [][]string {
	if maxRows > 0 && len(rows) > maxRows {
		return rows[:maxRows]
	}
	return rows
}
