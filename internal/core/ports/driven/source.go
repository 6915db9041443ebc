package driven

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// DataSource loads a tabular dataset from one kind of store.
// Each store kind (csv, json, sql, redis, ...) implements this interface.
type DataSource interface {
	// Kind returns the store kind this source handles.
	Kind() domain.StoreKind

	// ConfigKeys lists the kind-specific configuration fields.
	ConfigKeys() []domain.ConfigKey

	// Load reads the dataset described by cfg.
	//
	// Implementations must verify, before returning, that the configured
	// text column exists in the loaded dataset, and fail with
	// domain.MissingColumnError otherwise. Any connection or handle
	// opened for the call is released on every exit path.
	Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error)
}
