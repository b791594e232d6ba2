// Package dataset loads the beneficiary table from disk.
package dataset

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrUnsupportedFormat is returned for a dataset format with no loader.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrNotFound is returned when the dataset file does not exist.
	ErrNotFound = errors.New("dataset not found")

	// ErrInvalidData is returned when the dataset cannot be decoded.
	ErrInvalidData = errors.New("invalid dataset")

	// ErrConnectionFailed is returned when the SQLite database cannot be opened.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrMigrationFailed is returned when the SQLite schema cannot be applied.
	ErrMigrationFailed = errors.New("database migration failed")

	// ErrTxFailed is returned when an import transaction fails.
	ErrTxFailed = errors.New("transaction failed")
)

// DatasetError wraps errors with additional context.
type DatasetError struct {
	Op      string // Operation that failed (e.g., "Load")
	Path    string // Dataset path if applicable
	Message string
	Err     error
}

func (e *DatasetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// NewDatasetError creates a new DatasetError.
func NewDatasetError(op, path, message string, err error) *DatasetError {
	return &DatasetError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}
