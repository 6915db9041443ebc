package driven

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// DataSink persists a tabular dataset to one kind of store.
type DataSink interface {
	// Kind returns the store kind this sink handles.
	Kind() domain.StoreKind

	// ConfigKeys lists the kind-specific configuration fields.
	ConfigKeys() []domain.ConfigKey

	// Save writes the dataset to the destination described by cfg.
	//
	// File kinds create missing parent directories and overwrite the
	// target. Table kinds honour cfg.Policy: append, replace, or fail.
	// Under fail, an existing table raises domain.TableConflictError and
	// the table content is left untouched. Any connection opened for the
	// call is released on every exit path.
	Save(ctx context.Context, dataset *domain.Dataset, cfg domain.DestConfig) error
}
