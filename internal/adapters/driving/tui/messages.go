package tui

import (
	"time"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// runFinished carries the run result back to the model.
type runFinished struct {
	summary *domain.Summary
	err     error
}

// pollTick drives the periodic progress refresh while a run is active.
type pollTick time.Time
