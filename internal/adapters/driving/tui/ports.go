// Package tui provides the interactive progress view for pipeline runs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Pipeline reports run state and progress.
	Pipeline driving.PipelineService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	return nil
}

// RunSpec describes the run the view executes and displays.
type RunSpec struct {
	// Source is the dataset being read.
	Source domain.SourceConfig

	// Dest is the destination being written.
	Dest domain.DestConfig

	// Run executes the pipeline. The view polls Pipeline.Progress
	// while it runs, so Run must drive the same service.
	Run func(ctx context.Context) (*domain.Summary, error)
}
