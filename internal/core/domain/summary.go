package domain

import "time"

// RunState tracks a pipeline run through its lifecycle.
type RunState string

const (
	// StateIdle means the run has not started.
	StateIdle RunState = "idle"
	// StateLoading means the source dataset is being read.
	StateLoading RunState = "loading"
	// StateScoring means rows are being scored.
	StateScoring RunState = "scoring"
	// StateSaving means the processed dataset is being persisted.
	StateSaving RunState = "saving"
	// StateDone means the run finished and its dataset was returned.
	StateDone RunState = "done"
	// StateFailed means the run aborted; it is reachable from any
	// non-terminal state.
	StateFailed RunState = "failed"
)

// Terminal reports whether the state ends a run.
func (s RunState) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// DistributionStats summarises one numeric column of a run.
type DistributionStats struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary aggregates the statistics of one pipeline run.
type Summary struct {
	// RunID uniquely identifies the run.
	RunID string

	// Counts holds the number of rows per label.
	Counts map[Label]int

	// Percentages holds the share of rows per label, 0-100.
	Percentages map[Label]float64

	// Polarity summarises the polarity column.
	Polarity DistributionStats

	// Subjectivity summarises the subjectivity column.
	Subjectivity DistributionStats

	// TotalRows is the number of rows processed.
	TotalRows int

	// Warnings counts rows that used the fallback score, including
	// empty-text rows.
	Warnings int

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time
}

// Count returns the number of rows carrying the label.
func (s *Summary) Count(label Label) int {
	if s.Counts == nil {
		return 0
	}
	return s.Counts[label]
}

// Percentage returns the share of rows carrying the label, 0-100.
func (s *Summary) Percentage(label Label) float64 {
	if s.Percentages == nil {
		return 0
	}
	return s.Percentages[label]
}
