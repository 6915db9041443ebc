package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// Ensure StoreRegistry implements both interfaces.
var (
	_ driven.StoreRegistry = (*StoreRegistry)(nil)
	_ driving.StoreCatalog = (*StoreRegistry)(nil)
)

// StoreRegistry holds the registered store implementations and answers kind
// lookups for the pipeline, the CLI and the MCP server.
type StoreRegistry struct {
	mu      sync.RWMutex
	sources map[domain.StoreKind]driven.DataSource
	sinks   map[domain.StoreKind]driven.DataSink
}

// NewStoreRegistry creates an empty store registry.
func NewStoreRegistry() *StoreRegistry {
	return &StoreRegistry{
		sources: make(map[domain.StoreKind]driven.DataSource),
		sinks:   make(map[domain.StoreKind]driven.DataSink),
	}
}

// RegisterSource adds a source implementation, replacing any previous
// registration for the same kind.
func (r *StoreRegistry) RegisterSource(source driven.DataSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Kind()] = source
}

// RegisterSink adds a sink implementation, replacing any previous
// registration for the same kind.
func (r *StoreRegistry) RegisterSink(sink driven.DataSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[sink.Kind()] = sink
}

// Source returns the DataSource registered for kind.
func (r *StoreRegistry) Source(kind domain.StoreKind) (driven.DataSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[kind]
	if !ok {
		return nil, fmt.Errorf("source kind %q: %w", kind, domain.ErrUnsupportedKind)
	}
	return source, nil
}

// Sink returns the DataSink registered for kind.
func (r *StoreRegistry) Sink(kind domain.StoreKind) (driven.DataSink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sinks[kind]
	if !ok {
		return nil, fmt.Errorf("sink kind %q: %w", kind, domain.ErrUnsupportedKind)
	}
	return sink, nil
}

// SourceKinds returns all registered source kinds, sorted.
func (r *StoreRegistry) SourceKinds() []domain.StoreKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]domain.StoreKind, 0, len(r.sources))
	for kind := range r.sources {
		kinds = append(kinds, kind)
	}
	sortKinds(kinds)
	return kinds
}

// SinkKinds returns all registered sink kinds, sorted.
func (r *StoreRegistry) SinkKinds() []domain.StoreKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]domain.StoreKind, 0, len(r.sinks))
	for kind := range r.sinks {
		kinds = append(kinds, kind)
	}
	sortKinds(kinds)
	return kinds
}

// Sources lists every registered source kind with its config keys.
func (r *StoreRegistry) Sources() []driving.StoreInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]driving.StoreInfo, 0, len(r.sources))
	for kind, source := range r.sources {
		infos = append(infos, driving.StoreInfo{Kind: kind, ConfigKeys: source.ConfigKeys()})
	}
	sortInfos(infos)
	return infos
}

// Sinks lists every registered sink kind with its config keys.
func (r *StoreRegistry) Sinks() []driving.StoreInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]driving.StoreInfo, 0, len(r.sinks))
	for kind, sink := range r.sinks {
		infos = append(infos, driving.StoreInfo{Kind: kind, ConfigKeys: sink.ConfigKeys()})
	}
	sortInfos(infos)
	return infos
}

// ValidateSourceConfig checks the generic fields and the kind's required
// config keys before any connection is attempted.
func (r *StoreRegistry) ValidateSourceConfig(cfg domain.SourceConfig) error {
	if cfg.TextColumn == "" {
		cfg.TextColumn = domain.DefaultTextColumn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	source, err := r.Source(cfg.Kind)
	if err != nil {
		return err
	}
	for _, key := range source.ConfigKeys() {
		if key.Required && sourceValue(&cfg, key.Key) == "" {
			return &domain.ConfigurationError{
				Field:  "source." + key.Key,
				Value:  "",
				Reason: fmt.Sprintf("required for %s sources", cfg.Kind),
			}
		}
	}
	return nil
}

// ValidateDestConfig checks the generic fields and the kind's required
// config keys before any connection is attempted.
func (r *StoreRegistry) ValidateDestConfig(cfg domain.DestConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	sink, err := r.Sink(cfg.Kind)
	if err != nil {
		return err
	}
	for _, key := range sink.ConfigKeys() {
		if key.Required && destValue(&cfg, key.Key) == "" {
			return &domain.ConfigurationError{
				Field:  "output." + key.Key,
				Value:  "",
				Reason: fmt.Sprintf("required for %s destinations", cfg.Kind),
			}
		}
	}
	return nil
}

// sourceValue resolves a config key against the dedicated config fields
// first, then the kind-specific settings.
func sourceValue(cfg *domain.SourceConfig, key string) string {
	if key == "query" {
		return cfg.Query
	}
	return cfg.Setting(key)
}

// destValue resolves a config key the same way for destinations.
func destValue(cfg *domain.DestConfig, key string) string {
	if key == "table" {
		return cfg.Table
	}
	return cfg.Setting(key)
}

func sortKinds(kinds []domain.StoreKind) {
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
}

func sortInfos(infos []driving.StoreInfo) {
	sort.Slice(infos, func(i, j int) bool { return infos[i].Kind < infos[j].Kind })
}
