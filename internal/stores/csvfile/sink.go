package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Sink writes a dataset to a delimited file. Missing parent directories
// are created and an existing file is overwritten.
type Sink struct{}

var _ driven.DataSink = (*Sink)(nil)

// NewSink creates a delimited-file sink.
func NewSink() *Sink {
	return &Sink{}
}

// Kind returns the store kind this sink handles.
func (s *Sink) Kind() domain.StoreKind {
	return domain.KindCSV
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Sink) ConfigKeys() []domain.ConfigKey {
	return configKeys()
}

// Save writes the dataset to cfg.Location.
func (s *Sink) Save(ctx context.Context, dataset *domain.Dataset, cfg domain.DestConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	comma, err := delimiterRune(cfg.Setting(settingDelimiter))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma

	if err := w.Write(dataset.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(dataset.Columns))
	for _, row := range dataset.Rows {
		for i, col := range dataset.Columns {
			record[i] = renderValue(row[col])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing records: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Location), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(cfg.Location, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// renderValue converts a cell to its field text. Nil cells become empty
// fields.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
