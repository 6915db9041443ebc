package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
	"github.com/OhhJay/nlp-pipeline/internal/sentiment"
)

// blockingSource holds Load until released, for concurrency tests.
type blockingSource struct {
	fakeSource
	release chan struct{}
}

func (b *blockingSource) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.fakeSource.Load(ctx, cfg)
}

func reviewsDataset() *domain.Dataset {
	dataset := domain.NewDataset([]string{"id", "text"})
	dataset.Append(domain.Row{"id": 1, "text": "Great service!"})
	dataset.Append(domain.Row{"id": 2, "text": "Terrible experience."})
	dataset.Append(domain.Row{"id": 3, "text": "It's okay."})
	return dataset
}

func testSourceConfig() domain.SourceConfig {
	return domain.SourceConfig{
		Kind:       domain.KindCSV,
		Location:   "reviews.csv",
		TextColumn: "text",
	}
}

func testDestConfig() domain.DestConfig {
	return domain.DestConfig{
		Kind:     domain.KindCSV,
		Location: "scored.csv",
	}
}

func newTestPipeline(source driven.DataSource, sink driven.DataSink) *PipelineService {
	registry := NewStoreRegistry()
	registry.RegisterSource(source)
	registry.RegisterSink(sink)
	return NewPipelineService(registry, sentiment.NewAnalyzer(), nil)
}

func TestPipelineService_Run(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	scored, summary, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)
	require.NotNil(t, scored)
	require.NotNil(t, summary)
	assert.Equal(t, domain.StateDone, pipeline.State())

	expectedColumns := []string{
		"id", "text",
		domain.ColumnPolarity,
		domain.ColumnSubjectivity,
		domain.ColumnSentiment,
		domain.ColumnProcessedAt,
	}
	assert.Equal(t, expectedColumns, scored.Columns)
	require.Equal(t, 3, scored.Len())

	labels := make([]string, 0, scored.Len())
	for _, row := range scored.Rows {
		label, ok := row.StringValue(domain.ColumnSentiment)
		require.True(t, ok)
		labels = append(labels, label)
	}
	assert.Equal(t, []string{"positive", "negative", "neutral"}, labels)

	first, ok := scored.Rows[0][domain.ColumnPolarity].(float64)
	require.True(t, ok)
	assert.Greater(t, first, 0.0)

	second, ok := scored.Rows[1][domain.ColumnPolarity].(float64)
	require.True(t, ok)
	assert.Less(t, second, 0.0)

	third, ok := scored.Rows[2][domain.ColumnPolarity].(float64)
	require.True(t, ok)
	assert.Equal(t, 0.0, third)

	assert.Same(t, scored, sink.saved)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 0, summary.Warnings)
	assert.Equal(t, 1, summary.Count(domain.LabelPositive))
	assert.Equal(t, 1, summary.Count(domain.LabelNegative))
	assert.Equal(t, 1, summary.Count(domain.LabelNeutral))
	assert.False(t, summary.FinishedAt.Before(summary.StartedAt))

	// the source dataset is never mutated; enrichment builds a new one
	_, mutated := source.dataset.Rows[0][domain.ColumnPolarity]
	assert.False(t, mutated)
}

func TestPipelineService_Run_ProcessedAtUniform(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	scored, _, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)

	stamp, ok := scored.Rows[0][domain.ColumnProcessedAt].(string)
	require.True(t, ok)
	_, err = time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)

	for _, row := range scored.Rows {
		assert.Equal(t, stamp, row[domain.ColumnProcessedAt])
	}
}

func TestPipelineService_Run_MissingTextValues(t *testing.T) {
	dataset := domain.NewDataset([]string{"id", "text"})
	dataset.Append(domain.Row{"id": 1, "text": nil})
	dataset.Append(domain.Row{"id": 2})
	dataset.Append(domain.Row{"id": 3, "text": "   "})
	dataset.Append(domain.Row{"id": 4, "text": "Great!"})

	source := &fakeSource{kind: domain.KindCSV, dataset: dataset}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	scored, summary, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Warnings)
	for _, row := range scored.Rows[:3] {
		assert.Equal(t, 0.0, row[domain.ColumnPolarity])
		assert.Equal(t, 0.0, row[domain.ColumnSubjectivity])
		assert.Equal(t, string(domain.LabelNeutral), row[domain.ColumnSentiment])
	}
	assert.Equal(t, string(domain.LabelPositive), scored.Rows[3][domain.ColumnSentiment])
}

func TestPipelineService_Run_EmptyDataset(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: domain.NewDataset([]string{"id", "text"})}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	scored, summary, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, scored.Len())
	assert.Equal(t, 0, summary.TotalRows)
	assert.NotNil(t, sink.saved)
	assert.Equal(t, domain.StateDone, pipeline.State())
}

func TestPipelineService_Run_LoadFailure(t *testing.T) {
	loadErr := &domain.SourceFormatError{Location: "reviews.csv", Err: errors.New("bad header")}
	source := &fakeSource{kind: domain.KindCSV, err: loadErr}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	scored, summary, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.Error(t, err)

	var formatErr *domain.SourceFormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.Nil(t, scored)
	assert.Nil(t, summary)
	assert.Nil(t, sink.saved)
	assert.Equal(t, domain.StateFailed, pipeline.State())
}

func TestPipelineService_Run_SaveFailure(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV, err: &domain.TableConflictError{Table: "scored"}}
	pipeline := newTestPipeline(source, sink)

	scored, summary, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.Error(t, err)

	var conflict *domain.TableConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.StateFailed, pipeline.State())

	// the scored dataset stays available despite the persistence failure
	require.NotNil(t, scored)
	assert.Equal(t, 3, scored.Len())
	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.TotalRows)
}

func TestPipelineService_Run_UnknownKinds(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	t.Run("unknown source kind", func(t *testing.T) {
		cfg := testSourceConfig()
		cfg.Kind = domain.KindRedis
		_, _, err := pipeline.Run(context.Background(), cfg, testDestConfig())
		assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
		assert.Equal(t, 0, source.loads)
	})

	t.Run("unknown destination kind", func(t *testing.T) {
		cfg := testDestConfig()
		cfg.Kind = domain.KindJSON
		_, _, err := pipeline.Run(context.Background(), testSourceConfig(), cfg)
		assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
		assert.Equal(t, 0, source.loads)
	})
}

func TestPipelineService_Run_InvalidConfig(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	t.Run("missing source location", func(t *testing.T) {
		cfg := testSourceConfig()
		cfg.Location = ""
		_, _, err := pipeline.Run(context.Background(), cfg, testDestConfig())
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "source.location", cfgErr.Field)
		assert.Equal(t, 0, source.loads)
	})

	t.Run("bad write policy", func(t *testing.T) {
		cfg := testDestConfig()
		cfg.Policy = domain.WritePolicy("upsert")
		_, _, err := pipeline.Run(context.Background(), testSourceConfig(), cfg)
		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "output.if_exists", cfgErr.Field)
		assert.Equal(t, 0, source.loads)
	})
}

func TestPipelineService_Run_DefaultTextColumn(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	cfg := testSourceConfig()
	cfg.TextColumn = ""
	scored, _, err := pipeline.Run(context.Background(), cfg, testDestConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, scored.Len())
}

func TestPipelineService_Run_Progress(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}

	var events []driving.Progress
	pipeline := newTestPipeline(source, sink).WithProgress(func(p driving.Progress) {
		events = append(events, p)
	})

	_, _, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)
	require.NotEmpty(t, events)

	states := make([]domain.RunState, 0, len(events))
	for _, event := range events {
		states = append(states, event.State)
	}
	assert.Equal(t, domain.StateLoading, states[0])
	assert.Contains(t, states, domain.StateScoring)
	assert.Contains(t, states, domain.StateSaving)

	last := events[len(events)-1]
	assert.Equal(t, domain.StateDone, last.State)
	assert.Equal(t, 3, last.Processed)
	assert.Equal(t, 3, last.Total)

	// The polled snapshot matches the last published event.
	assert.Equal(t, last, pipeline.Progress())
}

func TestPipelineService_Run_WritesReport(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "run.summary.txt")

		dest := testDestConfig()
		dest.WriteReport = true
		dest.ReportPath = path

		source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
		pipeline := newTestPipeline(source, &fakeSink{kind: domain.KindCSV})
		_, _, err := pipeline.Run(context.Background(), testSourceConfig(), dest)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Sentiment Analysis Summary")
		assert.Contains(t, string(content), "Total Records Processed: 3")
	})

	t.Run("default path beside output", func(t *testing.T) {
		dir := t.TempDir()

		dest := testDestConfig()
		dest.Location = filepath.Join(dir, "scored.csv")
		dest.WriteReport = true

		source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
		pipeline := newTestPipeline(source, &fakeSink{kind: domain.KindCSV})
		_, _, err := pipeline.Run(context.Background(), testSourceConfig(), dest)
		require.NoError(t, err)

		_, err = os.Stat(dest.Location + ".summary.txt")
		assert.NoError(t, err)
	})

	t.Run("report failure keeps the run successful", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		dest := testDestConfig()
		dest.WriteReport = true
		dest.ReportPath = filepath.Join(blocker, "report.txt")

		source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
		pipeline := newTestPipeline(source, &fakeSink{kind: domain.KindCSV})
		_, _, err := pipeline.Run(context.Background(), testSourceConfig(), dest)
		require.NoError(t, err)
		assert.Equal(t, domain.StateDone, pipeline.State())
	})
}

func TestPipelineService_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	_, _, err := pipeline.Run(ctx, testSourceConfig(), testDestConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sink.saved)
	assert.Equal(t, domain.StateFailed, pipeline.State())
}

func TestPipelineService_Run_RejectsConcurrentRun(t *testing.T) {
	source := &blockingSource{
		fakeSource: fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()},
		release:    make(chan struct{}),
	}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	done := make(chan error, 1)
	go func() {
		_, _, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return pipeline.State() == domain.StateLoading
	}, time.Second, 5*time.Millisecond)

	_, _, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	close(source.release)
	require.NoError(t, <-done)
}

func TestPipelineService_Run_SequentialRuns(t *testing.T) {
	source := &fakeSource{kind: domain.KindCSV, dataset: reviewsDataset()}
	sink := &fakeSink{kind: domain.KindCSV}
	pipeline := newTestPipeline(source, sink)

	_, _, err := pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)

	_, _, err = pipeline.Run(context.Background(), testSourceConfig(), testDestConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, source.loads)
}

func TestPipelineService_State_InitiallyIdle(t *testing.T) {
	pipeline := newTestPipeline(&fakeSource{kind: domain.KindCSV}, &fakeSink{kind: domain.KindCSV})
	assert.Equal(t, domain.StateIdle, pipeline.State())
}
