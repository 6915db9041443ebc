package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
	"github.com/OhhJay/nlp-pipeline/internal/report"
)

// progressEvery is the row cadence for progress logging and publishing.
const progressEvery = 100

// Ensure PipelineService implements the interface.
var _ driving.PipelineService = (*PipelineService)(nil)

// PipelineService coordinates one load-score-save run at a time.
type PipelineService struct {
	registry driven.StoreRegistry
	scorer   driven.Scorer
	log      *slog.Logger
	progress driving.ProgressFunc

	mu      sync.Mutex
	state   domain.RunState
	current driving.Progress
}

// NewPipelineService creates a pipeline service. A nil logger disables logging.
func NewPipelineService(registry driven.StoreRegistry, scorer driven.Scorer, log *slog.Logger) *PipelineService {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PipelineService{
		registry: registry,
		scorer:   scorer,
		log:      log,
		state:    domain.StateIdle,
	}
}

// WithProgress registers an observer for run progress.
// It must be called before Run; the observer is invoked inline and must
// return quickly.
func (p *PipelineService) WithProgress(fn driving.ProgressFunc) *PipelineService {
	p.progress = fn
	return p
}

// State returns the current run state.
func (p *PipelineService) State() domain.RunState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Progress returns a snapshot of the current run progress.
// Callers poll it from another goroutine while Run executes.
func (p *PipelineService) Progress() driving.Progress {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Run executes one pipeline invocation.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (p *PipelineService) Run(ctx context.Context, source domain.SourceConfig, dest domain.DestConfig) (*domain.Dataset, *domain.Summary, error) {
	if err := p.begin(); err != nil {
		return nil, nil, err
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	log := p.log.With("run_id", runID)

	// 1. Validate configurations before touching any store
	if source.TextColumn == "" {
		source.TextColumn = domain.DefaultTextColumn
	}
	if err := source.Validate(); err != nil {
		return nil, nil, p.failed(log, err)
	}
	if err := dest.Validate(); err != nil {
		return nil, nil, p.failed(log, err)
	}
	src, err := p.registry.Source(source.Kind)
	if err != nil {
		return nil, nil, p.failed(log, fmt.Errorf("resolving source: %w", err))
	}
	sink, err := p.registry.Sink(dest.Kind)
	if err != nil {
		return nil, nil, p.failed(log, fmt.Errorf("resolving destination: %w", err))
	}

	log.Info("starting run",
		"source_kind", source.Kind,
		"source", source.Location,
		"output_kind", dest.Kind,
		"output", dest.Location,
	)

	// 2. Load the source dataset; any failure ends the run with nothing written
	p.transition(domain.StateLoading, driving.Progress{State: domain.StateLoading})
	dataset, err := src.Load(ctx, source)
	if err != nil {
		return nil, nil, p.failed(log, fmt.Errorf("loading source: %w", err))
	}
	log.Info("dataset loaded", "rows", dataset.Len(), "columns", len(dataset.Columns))

	// 3. Score the text column and enrich every row
	p.transition(domain.StateScoring, driving.Progress{State: domain.StateScoring, Total: dataset.Len()})
	scored, warnings := p.scoreDataset(ctx, log, dataset, source.TextColumn, startedAt)
	if err := ctx.Err(); err != nil {
		return nil, nil, p.failed(log, err)
	}

	// 4. Persist the scored dataset; it stays available to the caller
	// even when persistence fails
	p.transition(domain.StateSaving, driving.Progress{
		State:     domain.StateSaving,
		Processed: scored.Len(),
		Total:     scored.Len(),
	})
	if err := sink.Save(ctx, scored, dest); err != nil {
		summary := report.Compute(scored, warnings, runID, startedAt, time.Now().UTC())
		return scored, summary, p.failed(log, fmt.Errorf("saving output: %w", err))
	}
	summary := report.Compute(scored, warnings, runID, startedAt, time.Now().UTC())

	// 5. Optional report artifact; failure is a warning, never a save failure
	if dest.WriteReport {
		path := dest.ReportPath
		if path == "" {
			path = report.DefaultPath(dest.Location)
		}
		if err := report.Write(summary, path); err != nil {
			log.Warn("report not written", "path", path, "error", err)
		} else {
			log.Info("report written", "path", path)
		}
	}

	// 6. Done
	p.transition(domain.StateDone, driving.Progress{
		State:     domain.StateDone,
		Processed: scored.Len(),
		Total:     scored.Len(),
	})
	log.Info("run complete",
		"rows", scored.Len(),
		"positive", summary.Count(domain.LabelPositive),
		"negative", summary.Count(domain.LabelNegative),
		"neutral", summary.Count(domain.LabelNeutral),
		"fallbacks", summary.Warnings,
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)
	return scored, summary, nil
}

// scoreDataset builds the enriched dataset from the source rows.
// It returns the new dataset and the number of rows that used the
// fallback score.
func (p *PipelineService) scoreDataset(
	ctx context.Context,
	log *slog.Logger,
	dataset *domain.Dataset,
	textColumn string,
	startedAt time.Time,
) (*domain.Dataset, int) {
	total := dataset.Len()
	texts := make([]string, total)
	for i, row := range dataset.Rows {
		text, ok := row.StringValue(textColumn)
		if !ok {
			log.Warn("row has no text value, scoring as empty", "row", i, "column", textColumn)
		}
		texts[i] = text
	}

	outcomes := p.scorer.ScoreBatch(ctx, texts)

	processedAt := startedAt.Format(time.RFC3339)
	enriched := domain.NewDataset(resultColumns(dataset.Columns))
	warnings := 0
	for i, row := range dataset.Rows {
		outcome := outcomes[i]
		if outcome.Fallback {
			warnings++
			if outcome.Err != nil {
				log.Warn("scoring fell back to neutral", "row", i, "error", outcome.Err)
			}
		}

		next := row.Clone()
		next[domain.ColumnPolarity] = outcome.Sentiment.Polarity
		next[domain.ColumnSubjectivity] = outcome.Sentiment.Subjectivity
		next[domain.ColumnSentiment] = string(outcome.Sentiment.Label)
		next[domain.ColumnProcessedAt] = processedAt
		enriched.Append(next)

		if processed := i + 1; processed%progressEvery == 0 && processed < total {
			log.Info("scoring progress", "processed", processed, "total", total)
			p.publish(driving.Progress{State: domain.StateScoring, Processed: processed, Total: total})
		}
	}

	log.Info("scoring complete", "processed", total, "fallbacks", warnings)
	p.publish(driving.Progress{State: domain.StateScoring, Processed: total, Total: total})
	return enriched, warnings
}

// begin claims the orchestrator for a new run.
func (p *PipelineService) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != domain.StateIdle && !p.state.Terminal() {
		return domain.ErrRunInProgress
	}
	p.state = domain.StateIdle
	p.current = driving.Progress{State: domain.StateIdle}
	return nil
}

// failed transitions to the failed state and returns err unchanged.
func (p *PipelineService) failed(log *slog.Logger, err error) error {
	p.transition(domain.StateFailed, driving.Progress{State: domain.StateFailed})
	log.Error("run failed", "error", err)
	return err
}

func (p *PipelineService) transition(state domain.RunState, progress driving.Progress) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
	p.publish(progress)
}

// publish records the progress snapshot and forwards it to the
// observer when one is registered.
func (p *PipelineService) publish(progress driving.Progress) {
	p.mu.Lock()
	p.current = progress
	p.mu.Unlock()
	if p.progress != nil {
		p.progress(progress)
	}
}

// resultColumns appends the scoring columns to the source column order,
// skipping any the source already carries.
func resultColumns(columns []string) []string {
	out := make([]string, len(columns), len(columns)+4)
	copy(out, columns)
	added := []string{
		domain.ColumnPolarity,
		domain.ColumnSubjectivity,
		domain.ColumnSentiment,
		domain.ColumnProcessedAt,
	}
	for _, column := range added {
		if !containsColumn(out, column) {
			out = append(out, column)
		}
	}
	return out
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
