// Package main provides buscador-import, which copies a JSON or Excel
// dataset into the SQLite database the server can load at startup.
//
// Usage:
//
//	buscador-import -source data_good.json -dsn ./buscador.db
//	buscador-import -source padron.xlsx -sheet Padron -dsn ./buscador.db
//
// Existing rows in the database are replaced. A JSON summary is written to
// stdout on success.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const (
	ExitSuccess     = 0
	ExitUsageError  = 2
	ExitImportError = 1
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("buscador-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	source := fs.String("source", "", "Dataset file to import (.json or .xlsx)")
	format := fs.String("format", "auto", "Source format: auto, json or xlsx")
	sheet := fs.String("sheet", "", "Worksheet of an xlsx source (default: first sheet)")
	dsn := fs.String("dsn", "./buscador.db", "SQLite database to write")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return ExitUsageError
	}

	if *showVersion {
		fmt.Fprintf(stdout, "buscador-import %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	if *source == "" {
		fmt.Fprintln(stderr, "buscador-import: -source is required")
		fs.Usage()
		return ExitUsageError
	}

	summary, err := importDataset(context.Background(), ImportOptions{
		Source: *source,
		Format: *format,
		Sheet:  *sheet,
		DSN:    *dsn,
	})
	if err != nil {
		fmt.Fprintf(stderr, "buscador-import: %v\n", err)
		return ExitImportError
	}

	json.NewEncoder(stdout).Encode(summary)
	return ExitSuccess
}
