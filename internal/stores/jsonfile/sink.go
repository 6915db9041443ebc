package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Sink writes a dataset as a JSON array of objects. Missing parent
// directories are created and an existing file is overwritten.
type Sink struct{}

var _ driven.DataSink = (*Sink)(nil)

// NewSink creates a structured-file sink.
func NewSink() *Sink {
	return &Sink{}
}

// Kind returns the store kind this sink handles.
func (s *Sink) Kind() domain.StoreKind {
	return domain.KindJSON
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Sink) ConfigKeys() []domain.ConfigKey {
	return nil
}

// Save writes the dataset to cfg.Location.
func (s *Sink) Save(ctx context.Context, dataset *domain.Dataset, cfg domain.DestConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(dataset.Rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(cfg.Location), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(cfg.Location, data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
