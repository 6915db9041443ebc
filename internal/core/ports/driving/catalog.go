package driving

import (
	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// StoreInfo describes one registered store kind for display.
type StoreInfo struct {
	// Kind is the store kind identifier.
	Kind domain.StoreKind

	// ConfigKeys lists the kind-specific configuration fields.
	ConfigKeys []domain.ConfigKey
}

// StoreCatalog exposes the registered store kinds to external layers.
type StoreCatalog interface {
	// Sources lists every registered source kind, sorted by kind.
	Sources() []StoreInfo

	// Sinks lists every registered sink kind, sorted by kind.
	Sinks() []StoreInfo

	// ValidateSourceConfig checks cfg against the kind's config keys.
	ValidateSourceConfig(cfg domain.SourceConfig) error

	// ValidateDestConfig checks cfg against the kind's config keys.
	ValidateDestConfig(cfg domain.DestConfig) error
}
