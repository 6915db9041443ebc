package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Source reads a delimited file into a dataset. The first record is the
// header and fixes the column order; every value loads as a string.
type Source struct{}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a delimited-file source.
func NewSource() *Source {
	return &Source{}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindCSV
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	return configKeys()
}

// Load reads the file at cfg.Location.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comma, err := delimiterRune(cfg.Setting(settingDelimiter))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", cfg.Location, domain.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.SourceFormatError{Location: cfg.Location, Err: errors.New("missing header record")}
		}
		return nil, &domain.SourceFormatError{Location: cfg.Location, Err: err}
	}

	dataset := domain.NewDataset(header)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.SourceFormatError{Location: cfg.Location, Err: err}
		}

		row := make(domain.Row, len(header))
		for i, col := range header {
			row[col] = record[i]
		}
		dataset.Append(row)
	}

	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}
