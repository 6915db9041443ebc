package mcp

import (
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Pipeline runs the load-score-save pipeline.
	Pipeline driving.PipelineService

	// Scorer scores ad-hoc texts.
	Scorer driving.ScoreService

	// Catalog lists the registered store kinds.
	Catalog driving.StoreCatalog
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	if p.Scorer == nil {
		return ErrMissingScoreService
	}
	// Catalog is optional; store listings degrade to empty.
	return nil
}
