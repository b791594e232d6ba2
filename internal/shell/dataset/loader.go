package dataset

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sii-nl/buscador/internal/core/domain"
)

// =============================================================================
// Formats
// =============================================================================

// Format identifies a dataset encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a configured format name. "" and "auto" select
// detection by file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	default:
		return "", NewDatasetError("ParseFormat", "", "unknown format "+s, ErrUnsupportedFormat)
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", NewDatasetError("DetectFormat", path, "cannot detect format from extension", ErrUnsupportedFormat)
	}
}

// =============================================================================
// Loading
// =============================================================================

// Options configures Load.
type Options struct {
	Format Format
	// Sheet selects the worksheet of an xlsx file; "" uses the first sheet.
	Sheet string
}

// Load reads the dataset at path and returns it as an immutable table.
// Row order in the file becomes table order.
func Load(ctx context.Context, path string, opts Options) (*domain.Table, error) {
	rows, err := ReadRows(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	return domain.NewTable(rows), nil
}

// ReadRows reads the dataset at path as records, in file order.
func ReadRows(ctx context.Context, path string, opts Options) ([]domain.Record, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewDatasetError("Load", path, "file does not exist", ErrNotFound)
		}
		return nil, NewDatasetError("Load", path, err.Error(), err)
	}

	format := opts.Format
	if format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatJSON:
		return readJSONFile(path)
	case FormatXLSX:
		return readXLSXFile(path, opts.Sheet)
	case FormatSQLite:
		s, err := OpenSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.ReadRows(ctx)
	default:
		return nil, NewDatasetError("Load", path, "unknown format "+string(format), ErrUnsupportedFormat)
	}
}

// toRecords converts raw rows into records.
func toRecords(rows []map[string]any) []domain.Record {
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.NewRecord(row))
	}
	return records
}
