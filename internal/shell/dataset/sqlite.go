package dataset

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sii-nl/buscador/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore keeps a dataset in a SQLite database. The server only reads
// from it at startup; buscador-import writes it.
type SQLiteStore struct {
	db *sqlx.DB
}

// OpenSQLiteStore opens the database at dsn and runs migrations.
func OpenSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, NewDatasetError("OpenSQLiteStore", dsn, "failed to open database", ErrConnectionFailed)
	}
	// A single connection keeps ":memory:" databases consistent across queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewDatasetError("OpenSQLiteStore", dsn, "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewDatasetError("OpenSQLiteStore", dsn, err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Rows
// =============================================================================

// beneficiaryRow represents a row of the beneficiarios table.
type beneficiaryRow struct {
	RowOrder  int64          `db:"row_order"`
	CURP      sql.NullString `db:"curp"`
	Nombres   sql.NullString `db:"nombres"`
	ApPaterno sql.NullString `db:"ap_paterno"`
	ApMaterno sql.NullString `db:"ap_materno"`
	Apellidos sql.NullString `db:"apellidos"`
	Extra     string         `db:"extra"`
}

func recordToRow(order int, r domain.Record) (beneficiaryRow, error) {
	extra, err := json.Marshal(r.Extra)
	if err != nil {
		return beneficiaryRow{}, err
	}
	return beneficiaryRow{
		RowOrder:  int64(order),
		CURP:      nullString(r.CURP),
		Nombres:   nullString(r.Nombres),
		ApPaterno: nullString(r.ApPaterno),
		ApMaterno: nullString(r.ApMaterno),
		Apellidos: nullString(r.Apellidos),
		Extra:     string(extra),
	}, nil
}

func rowToRecord(row beneficiaryRow) (domain.Record, error) {
	fields := make(map[string]any)
	if row.Extra != "" {
		dec := json.NewDecoder(strings.NewReader(row.Extra))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil {
			return domain.Record{}, err
		}
		normalizeRow(fields)
	}
	fields[domain.FieldCURP] = nullValue(row.CURP)
	fields[domain.FieldNombres] = nullValue(row.Nombres)
	fields[domain.FieldApPaterno] = nullValue(row.ApPaterno)
	fields[domain.FieldApMaterno] = nullValue(row.ApMaterno)
	fields[domain.FieldApellidos] = nullValue(row.Apellidos)
	return domain.NewRecord(fields), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullValue(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}

// =============================================================================
// Operations
// =============================================================================

// ReadRows returns every stored record in row order.
func (s *SQLiteStore) ReadRows(ctx context.Context) ([]domain.Record, error) {
	var rows []beneficiaryRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT row_order, curp, nombres, ap_paterno, ap_materno, apellidos, extra
		FROM beneficiarios
		ORDER BY row_order`)
	if err != nil {
		return nil, NewDatasetError("ReadRows", "", err.Error(), ErrInvalidData)
	}

	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		r, err := rowToRecord(row)
		if err != nil {
			return nil, NewDatasetError("ReadRows", "", fmt.Sprintf("row %d: %v", row.RowOrder, err), ErrInvalidData)
		}
		records = append(records, r)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM beneficiarios`); err != nil {
		return 0, NewDatasetError("Count", "", err.Error(), ErrInvalidData)
	}
	return n, nil
}

// ReplaceAll replaces the stored dataset with records in one transaction.
// Record order is kept as row_order.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []domain.Record) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewDatasetError("ReplaceAll", "", "failed to begin transaction", ErrTxFailed)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM beneficiarios`); err != nil {
		return NewDatasetError("ReplaceAll", "", err.Error(), ErrTxFailed)
	}

	for i, r := range records {
		row, convErr := recordToRow(i, r)
		if convErr != nil {
			return NewDatasetError("ReplaceAll", "", fmt.Sprintf("row %d: %v", i, convErr), ErrInvalidData)
		}
		if _, err = tx.NamedExecContext(ctx, `
			INSERT INTO beneficiarios (row_order, curp, nombres, ap_paterno, ap_materno, apellidos, extra)
			VALUES (:row_order, :curp, :nombres, :ap_paterno, :ap_materno, :apellidos, :extra)`, row); err != nil {
			return NewDatasetError("ReplaceAll", "", err.Error(), ErrTxFailed)
		}
	}

	if err = tx.Commit(); err != nil {
		return NewDatasetError("ReplaceAll", "", "failed to commit transaction", ErrTxFailed)
	}
	return nil
}
