// Package report computes run summaries from processed datasets and
// renders them as plain-text artifacts.
package report

import (
	"time"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/stats"
)

// Compute derives the run summary from a processed dataset. The
// warnings count carries the rows that fell back to the neutral score.
func Compute(dataset *domain.Dataset, warnings int, runID string, startedAt, finishedAt time.Time) *domain.Summary {
	counts := make(map[domain.Label]int)
	polarities := make([]float64, 0, dataset.Len())
	subjectivities := make([]float64, 0, dataset.Len())

	for _, row := range dataset.Rows {
		if label, ok := row.StringValue(domain.ColumnSentiment); ok {
			counts[domain.Label(label)]++
		}
		if p, ok := floatValue(row[domain.ColumnPolarity]); ok {
			polarities = append(polarities, p)
		}
		if s, ok := floatValue(row[domain.ColumnSubjectivity]); ok {
			subjectivities = append(subjectivities, s)
		}
	}

	total := dataset.Len()
	percentages := make(map[domain.Label]float64, len(counts))
	if total > 0 {
		for label, n := range counts {
			percentages[label] = 100 * float64(n) / float64(total)
		}
	}

	polMin, polMax := stats.MinMax(polarities)
	subMin, subMax := stats.MinMax(subjectivities)

	return &domain.Summary{
		RunID:       runID,
		Counts:      counts,
		Percentages: percentages,
		Polarity: domain.DistributionStats{
			Mean:   stats.Mean(polarities),
			Median: stats.Median(polarities),
			StdDev: stats.StdDev(polarities),
			Min:    polMin,
			Max:    polMax,
		},
		Subjectivity: domain.DistributionStats{
			Mean:   stats.Mean(subjectivities),
			Median: stats.Median(subjectivities),
			StdDev: stats.StdDev(subjectivities),
			Min:    subMin,
			Max:    subMax,
		},
		TotalRows:  total,
		Warnings:   warnings,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
}

// floatValue extracts a numeric cell.
func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
