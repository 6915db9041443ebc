package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Source loads a dataset from a relational database by running a
// read-only query. The connection lives for the duration of one Load
// call and is released on every exit path.
type Source struct{}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a relational source.
func NewSource() *Source {
	return &Source{}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindSQL
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         "query",
			Label:       "Query",
			Description: "Read-only SQL query producing the dataset",
			Required:    true,
		},
	}
}

// Load runs cfg.Query against the database at cfg.Location.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	if cfg.Query == "" {
		return nil, &domain.ConfigurationError{
			Field:  "source.query",
			Value:  "",
			Reason: "required for sql sources",
		}
	}

	// The driver creates missing database files on open, which would
	// turn a typo into an empty database instead of an error.
	if isFilePath(cfg.Location) {
		if _, err := os.Stat(cfg.Location); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", cfg.Location, domain.ErrSourceNotFound)
		}
	}

	db, err := sql.Open("sqlite", cfg.Location+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, &domain.ConnectionError{Target: cfg.Location, Err: err}
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, &domain.ConnectionError{Target: cfg.Location, Err: err}
	}

	rows, err := db.QueryContext(ctx, cfg.Query)
	if err != nil {
		return nil, &domain.QueryError{Query: cfg.Query, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &domain.QueryError{Query: cfg.Query, Err: err}
	}

	dataset := domain.NewDataset(columns)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		dataset.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}

// normalizeValue maps driver values onto plain dataset values.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
