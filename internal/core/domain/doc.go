// Package domain defines the core business entities for the pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Dataset: An ordered tabular dataset of named-column rows
//   - Sentiment: A polarity/subjectivity/label score for one text
//   - Outcome: A sentiment plus how it was produced (scored or fallback)
//   - SourceConfig / DestConfig: Store selection and placement
//   - Summary: Aggregate statistics for one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
