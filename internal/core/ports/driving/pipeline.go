package driving

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// PipelineService runs the load-score-save pipeline.
type PipelineService interface {
	// Run executes one pipeline invocation: load the source dataset,
	// score its text column, persist the enriched dataset, and return
	// it with the run's aggregate summary.
	//
	// The returned dataset is non-nil whenever scoring completed, even
	// if persistence failed; callers keep access to the processed rows
	// alongside the save error.
	Run(ctx context.Context, source domain.SourceConfig, dest domain.DestConfig) (*domain.Dataset, *domain.Summary, error)

	// State returns the current run state.
	State() domain.RunState

	// Progress returns a snapshot of the current run progress. Safe to
	// call from another goroutine while Run executes.
	Progress() Progress
}

// Progress is a point-in-time view of a running pipeline.
type Progress struct {
	// State is the lifecycle phase the run is in.
	State domain.RunState

	// Processed is the number of rows scored so far.
	Processed int

	// Total is the number of rows in the run, 0 until loading finishes.
	Total int
}

// ProgressFunc receives progress updates during a run.
// The orchestrator calls it inline; implementations must return quickly.
type ProgressFunc func(Progress)
