package driven

import (
	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// StoreRegistry resolves store kinds to implementations.
// It maintains the set of registered sources and sinks.
type StoreRegistry interface {
	// Source returns the DataSource registered for kind.
	// Returns domain.ErrUnsupportedKind for unknown kinds.
	Source(kind domain.StoreKind) (DataSource, error)

	// Sink returns the DataSink registered for kind.
	// Returns domain.ErrUnsupportedKind for unknown kinds.
	Sink(kind domain.StoreKind) (DataSink, error)

	// RegisterSource adds a source implementation.
	RegisterSource(source DataSource)

	// RegisterSink adds a sink implementation.
	RegisterSink(sink DataSink)

	// SourceKinds returns all registered source kinds, sorted.
	SourceKinds() []domain.StoreKind

	// SinkKinds returns all registered sink kinds, sorted.
	SinkKinds() []domain.StoreKind
}
