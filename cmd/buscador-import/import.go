package main

import (
	"context"
	"fmt"

	"github.com/sii-nl/buscador/internal/shell/dataset"
)

// ImportOptions configures an import.
type ImportOptions struct {
	Source string
	Format string
	Sheet  string
	DSN    string
}

// Summary reports a completed import.
type Summary struct {
	Source  string `json:"source"`
	DSN     string `json:"dsn"`
	Records int    `json:"records"`
}

// importDataset reads the source dataset and replaces the contents of the
// database at opts.DSN with it.
func importDataset(ctx context.Context, opts ImportOptions) (Summary, error) {
	format, err := dataset.ParseFormat(opts.Format)
	if err != nil {
		return Summary{}, err
	}
	if format == dataset.FormatSQLite {
		return Summary{}, fmt.Errorf("source must be a json or xlsx dataset")
	}

	records, err := dataset.ReadRows(ctx, opts.Source, dataset.Options{Format: format, Sheet: opts.Sheet})
	if err != nil {
		return Summary{}, err
	}

	store, err := dataset.OpenSQLiteStore(opts.DSN)
	if err != nil {
		return Summary{}, err
	}
	defer store.Close()

	if err := store.ReplaceAll(ctx, records); err != nil {
		return Summary{}, err
	}

	n, err := store.Count(ctx)
	if err != nil {
		return Summary{}, err
	}

	return Summary{Source: opts.Source, DSN: opts.DSN, Records: n}, nil
}
