package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/sii-nl/buscador/internal/core/domain"
)

// =============================================================================
// JSON Loader
// =============================================================================

// readJSONFile reads a JSON dataset. Two layouts are accepted:
//
//	[{"CURP": "...", "nombres": "..."}, ...]          // records
//	{"CURP": {"0": "...", "1": "..."}, "nombres": {...}} // columns, keyed by row index
//
// The columns layout is what pandas DataFrame.to_json writes by default.
func readJSONFile(path string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewDatasetError("ReadJSON", path, err.Error(), err)
	}
	defer f.Close()

	rows, err := DecodeJSON(bufio.NewReader(f))
	if err != nil {
		return nil, NewDatasetError("ReadJSON", path, err.Error(), ErrInvalidData)
	}
	return toRecords(rows), nil
}

// DecodeJSON decodes a records or columns JSON document into raw rows.
func DecodeJSON(r io.Reader) ([]map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	switch data[0] {
	case '[':
		var rows []map[string]any
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		for i, row := range rows {
			if row == nil {
				return nil, fmt.Errorf("row %d is not an object", i)
			}
			normalizeRow(row)
		}
		return rows, nil
	case '{':
		var columns map[string]map[string]any
		if err := dec.Decode(&columns); err != nil {
			return nil, fmt.Errorf("decode columns: %w", err)
		}
		return pivotColumns(columns), nil
	default:
		return nil, fmt.Errorf("document must be an array or an object")
	}
}

// pivotColumns turns {column: {index: value}} into rows ordered by index.
// A column without an entry for some index leaves that field null.
func pivotColumns(columns map[string]map[string]any) []map[string]any {
	seen := make(map[string]struct{})
	var index []string
	for _, values := range columns {
		for idx := range values {
			if _, ok := seen[idx]; !ok {
				seen[idx] = struct{}{}
				index = append(index, idx)
			}
		}
	}
	sortIndex(index)

	rows := make([]map[string]any, len(index))
	for i, idx := range index {
		row := make(map[string]any, len(columns))
		for col, values := range columns {
			row[col] = values[idx]
		}
		normalizeRow(row)
		rows[i] = row
	}
	return rows
}

// sortIndex orders row labels numerically when they are all integers,
// lexically otherwise.
func sortIndex(index []string) {
	numeric := true
	for _, idx := range index {
		if _, err := strconv.ParseInt(idx, 10, 64); err != nil {
			numeric = false
			break
		}
	}
	sort.SliceStable(index, func(i, j int) bool {
		if numeric {
			a, _ := strconv.ParseInt(index[i], 10, 64)
			b, _ := strconv.ParseInt(index[j], 10, 64)
			return a < b
		}
		return index[i] < index[j]
	})
}

// normalizeRow replaces json.Number values with int64 or float64.
func normalizeRow(row map[string]any) {
	for k, v := range row {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			row[k] = i
		} else if f, err := n.Float64(); err == nil {
			row[k] = f
		} else {
			row[k] = n.String()
		}
	}
}
