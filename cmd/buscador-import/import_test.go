package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sii-nl/buscador/internal/shell/dataset"
)

const testDataset = `[
  {"CURP": "GOMA850101MNLRRN09", "nombres": "ANA", "ap_paterno": "GOMEZ", "ap_materno": "MARTINEZ"},
  {"CURP": "LOGA900303HNLPRN02", "nombres": "LUIS", "ap_paterno": "GARZA", "ap_materno": "LOPEZ"}
]`

func writeSource(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "data_good.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0644))
	return dir, path
}

func TestImportDataset(t *testing.T) {
	dir, source := writeSource(t)
	dsn := filepath.Join(dir, "buscador.db")

	summary, err := importDataset(context.Background(), ImportOptions{Source: source, DSN: dsn})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Records)

	table, err := dataset.Load(context.Background(), dsn, dataset.Options{})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "MARTINEZ GOMEZ", table.At(0).Apellidos)
}

func TestImportDataset_ReplacesRows(t *testing.T) {
	dir, source := writeSource(t)
	dsn := filepath.Join(dir, "buscador.db")

	_, err := importDataset(context.Background(), ImportOptions{Source: source, DSN: dsn})
	require.NoError(t, err)
	summary, err := importDataset(context.Background(), ImportOptions{Source: source, DSN: dsn})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Records)
}

func TestImportDataset_RejectsSQLiteSource(t *testing.T) {
	_, err := importDataset(context.Background(), ImportOptions{Source: "a.db", Format: "sqlite", DSN: "b.db"})
	assert.Error(t, err)
}

func TestImportDataset_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := importDataset(context.Background(), ImportOptions{
		Source: filepath.Join(dir, "missing.json"),
		DSN:    filepath.Join(dir, "buscador.db"),
	})
	assert.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestRun(t *testing.T) {
	dir, source := writeSource(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-source", source, "-dsn", filepath.Join(dir, "out.db")}, &stdout, &stderr)

	require.Equal(t, ExitSuccess, code, stderr.String())
	var summary Summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, 2, summary.Records)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, ExitUsageError, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-source is required")

	assert.Equal(t, ExitUsageError, run([]string{"-bogus"}, &stdout, &stderr))
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, ExitSuccess, run([]string{"-version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "buscador-import dev")
}
