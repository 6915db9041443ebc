package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Source reads a file holding a JSON array of objects. Column order
// follows the order in which keys first appear across the file.
type Source struct{}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a structured-file source.
func NewSource() *Source {
	return &Source{}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindJSON
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	return nil
}

// Load reads the file at cfg.Location.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", cfg.Location, domain.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("reading source: %w", err)
	}

	columns, rows, err := decodeObjects(data)
	if err != nil {
		return nil, &domain.SourceFormatError{Location: cfg.Location, Err: err}
	}
	if len(columns) == 0 {
		// An empty array carries no column information at all, so the
		// text column cannot be verified.
		return nil, fmt.Errorf("%s: %w", cfg.Location, domain.ErrEmptyDataset)
	}

	dataset := &domain.Dataset{Columns: columns, Rows: rows}
	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}

// decodeObjects parses an array of objects token by token so the key
// order of the input survives into the column order.
func decodeObjects(data []byte) ([]string, []domain.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, nil, fmt.Errorf("expected an array of objects, got %v", tok)
	}

	var columns []string
	seen := make(map[string]bool)
	rows := make([]domain.Row, 0)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, nil, fmt.Errorf("expected an object, got %v", tok)
		}

		row := make(domain.Row)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("expected an object key, got %v", keyTok)
			}

			var value any
			if err := dec.Decode(&value); err != nil {
				return nil, nil, err
			}
			row[key] = value

			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return columns, rows, nil
}
