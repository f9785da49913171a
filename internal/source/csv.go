package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golf-search-go/internal/model"
)

// FileLoader reads golf ball records from a local CSV file.
type FileLoader struct {
	path string
}

// NewFileLoader creates a loader for the CSV at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads and parses the whole file.
func (l *FileLoader) Load(_ context.Context) ([]model.GolfBallData, []FailedRow, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source file %q: %w", l.path, err)
	}
	balls, failed := parseRows(string(data))
	return balls, failed, nil
}

// FailureLogLocation places the failure log next to the source file.
func (l *FileLoader) FailureLogLocation() string {
	return filepath.Join(filepath.Dir(l.path), "failed_rows.log")
}
