package recipes

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type excelSource struct {
	path string
}

// Rows decodes the first sheet of the workbook. Fields are trimmed the same
// way the text parser trims them; blank rows are dropped.
func (s *excelSource) Rows(ctx context.Context) ([][]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("recipe workbook %s has no sheets", s.path)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)
	}

	var rows [][]string
	for _, row := range raw {
		blank := true
		fields := make([]string, len(row))
		for i, cell := range row {
			fields[i] = strings.TrimSpace(cell)
			if fields[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, fields)
	}
	return rows, nil
}
