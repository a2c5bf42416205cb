// Package recipes loads and caches the recipe catalog.
package recipes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/b4ubuy/pantry/internal/tabular"
)

// Source supplies the raw recipe dataset as ordered rows of fields, header
// row first.
type Source interface {
	Rows(ctx context.Context) ([][]string, error)
}

// NewFileSource returns a Source backed by a dataset file. The format is
// chosen by extension: .xlsx workbooks are decoded with excelize, everything
// else is treated as comma-delimited text.
func NewFileSource(path string) Source {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return &excelSource{path: path}
	}
	return &csvSource{path: path}
}

type csvSource struct {
	path string
}

// Rows reads the file and parses every non-blank line into fields.
func (s *csvSource) Rows(ctx context.Context) ([][]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe dataset: %w", err)
	}
	var rows [][]string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, tabular.ParseLine(line))
	}
	return rows, nil
}
