package dataset

import (
	"strings"

	"github.com/sii-nl/buscador/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// Excel Loader
// =============================================================================

// readXLSXFile reads a worksheet where the first row holds field names and
// every following row is one record. Empty cells are missing values and
// fully empty rows are skipped.
func readXLSXFile(path, sheet string) ([]domain.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewDatasetError("ReadXLSX", path, "failed to open workbook", ErrInvalidData)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, NewDatasetError("ReadXLSX", path, "workbook has no sheets", ErrInvalidData)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, NewDatasetError("ReadXLSX", path, err.Error(), ErrInvalidData)
	}
	if len(rows) == 0 {
		return []domain.Record{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	raw := make([]map[string]any, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(map[string]any, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			var v any
			if i < len(cells) && cells[i] != "" {
				v = cells[i]
			}
			row[name] = v
		}
		raw = append(raw, row)
	}
	return toRecords(raw), nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
