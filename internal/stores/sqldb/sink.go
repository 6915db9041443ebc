package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Sink writes a dataset into a relational table under the configured
// write policy. The connection lives for the duration of one Save call.
type Sink struct{}

var _ driven.DataSink = (*Sink)(nil)

// NewSink creates a relational sink.
func NewSink() *Sink {
	return &Sink{}
}

// Kind returns the store kind this sink handles.
func (s *Sink) Kind() domain.StoreKind {
	return domain.KindSQL
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Sink) ConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "table",
			Label:       "Table",
			Description: "Destination table name",
			Required:    true,
		},
	}
}

// Save writes the dataset into cfg.Table at cfg.Location.
func (s *Sink) Save(ctx context.Context, dataset *domain.Dataset, cfg domain.DestConfig) error {
	if cfg.Table == "" {
		return &domain.ConfigurationError{
			Field:  "output.table",
			Value:  "",
			Reason: "required for sql outputs",
		}
	}

	if isFilePath(cfg.Location) {
		if err := os.MkdirAll(filepath.Dir(cfg.Location), 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", cfg.Location+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return &domain.ConnectionError{Target: cfg.Location, Err: err}
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return &domain.ConnectionError{Target: cfg.Location, Err: err}
	}

	exists, err := tableExists(ctx, db, cfg.Table)
	if err != nil {
		return err
	}

	// The conflict check happens before any write so a fail policy
	// leaves existing content untouched.
	if exists && cfg.Policy == domain.PolicyFail {
		return &domain.TableConflictError{Table: cfg.Table}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if exists && cfg.Policy == domain.PolicyReplace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE "+quoteIdent(cfg.Table)); err != nil {
			return fmt.Errorf("dropping table: %w", err)
		}
		exists = false
	}

	if !exists {
		if _, err := tx.ExecContext(ctx, createStatement(dataset, cfg.Table)); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}

	if err := insertRows(ctx, tx, dataset, cfg.Table); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// tableExists checks the schema catalogue for the table.
func tableExists(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking table: %w", err)
	}
	return true, nil
}

// createStatement builds a CREATE TABLE statement with column types
// inferred from the dataset values.
func createStatement(dataset *domain.Dataset, table string) string {
	defs := make([]string, len(dataset.Columns))
	for i, col := range dataset.Columns {
		defs[i] = quoteIdent(col) + " " + columnType(dataset, col)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

// insertRows writes every row inside the surrounding transaction.
func insertRows(ctx context.Context, tx *sql.Tx, dataset *domain.Dataset, table string) error {
	quoted := make([]string, len(dataset.Columns))
	placeholders := make([]string, len(dataset.Columns))
	for i, col := range dataset.Columns {
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", ")))
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(dataset.Columns))
	for _, row := range dataset.Rows {
		for i, col := range dataset.Columns {
			args[i] = bindValue(row[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row: %w", err)
		}
	}
	return nil
}
