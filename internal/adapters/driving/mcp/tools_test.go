package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

func TestServer_handleScore(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the scored text", func(t *testing.T) {
		mockScorer := &mockScoreService{
			outcome: domain.Scored(domain.Sentiment{
				Polarity:     0.5,
				Subjectivity: 0.6,
				Label:        domain.LabelPositive,
			}),
		}

		ports := &Ports{Pipeline: &mockPipelineService{}, Scorer: mockScorer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ScoreInput{Text: "Great service!"}
		_, output, err := server.handleScore(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 0.5, output.Polarity)
		assert.Equal(t, 0.6, output.Subjectivity)
		assert.Equal(t, "positive", output.Label)
		assert.False(t, output.Fallback)
	})

	t.Run("fallback is reported", func(t *testing.T) {
		mockScorer := &mockScoreService{
			outcome: domain.FallbackOutcome(nil),
		}

		ports := &Ports{Pipeline: &mockPipelineService{}, Scorer: mockScorer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ScoreInput{Text: "   "}
		_, output, err := server.handleScore(ctx, nil, input)

		require.NoError(t, err)
		assert.Zero(t, output.Polarity)
		assert.Equal(t, "neutral", output.Label)
		assert.True(t, output.Fallback)
	})
}

func TestServer_handleRun(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the pipeline from the input configs", func(t *testing.T) {
		mockPipeline := &mockPipelineService{
			summary: &domain.Summary{TotalRows: 3},
		}

		ports := &Ports{Pipeline: mockPipeline, Scorer: &mockScoreService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RunInput{
			SourceType: "csv",
			Source:     "reviews.csv",
			TextColumn: "text",
			OutputType: "sql",
			Output:     "scored.db",
			Table:      "results",
			IfExists:   "replace",
		}
		_, output, err := server.handleRun(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 3, output.Rows)
		assert.Empty(t, output.Summary)

		assert.Equal(t, domain.KindCSV, mockPipeline.lastSource.Kind)
		assert.Equal(t, "reviews.csv", mockPipeline.lastSource.Location)
		assert.Equal(t, "text", mockPipeline.lastSource.TextColumn)
		assert.Equal(t, domain.KindSQL, mockPipeline.lastDest.Kind)
		assert.Equal(t, "results", mockPipeline.lastDest.Table)
		assert.Equal(t, domain.PolicyReplace, mockPipeline.lastDest.Policy)
	})

	t.Run("includes the report when requested", func(t *testing.T) {
		mockPipeline := &mockPipelineService{
			summary: &domain.Summary{
				TotalRows:   2,
				Counts:      map[domain.Label]int{domain.LabelPositive: 2},
				Percentages: map[domain.Label]float64{domain.LabelPositive: 100},
			},
		}

		ports := &Ports{Pipeline: mockPipeline, Scorer: &mockScoreService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RunInput{
			SourceType: "csv",
			Source:     "reviews.csv",
			TextColumn: "text",
			OutputType: "csv",
			Output:     "scored.csv",
			Summary:    true,
		}
		_, output, err := server.handleRun(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 2, output.Rows)
		assert.Contains(t, output.Summary, "Sentiment Analysis Summary")
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mockPipeline := &mockPipelineService{
			err: errors.New("load failed"),
		}

		ports := &Ports{Pipeline: mockPipeline, Scorer: &mockScoreService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := RunInput{SourceType: "csv", Source: "missing.csv", TextColumn: "text"}
		_, _, err = server.handleRun(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "load failed")
	})
}

func TestServer_handleListStores(t *testing.T) {
	ctx := context.Background()

	t.Run("lists registered kinds", func(t *testing.T) {
		mockCatalog := &mockStoreCatalog{
			sources: []driving.StoreInfo{
				{Kind: domain.KindCSV, ConfigKeys: []domain.ConfigKey{{Key: "delimiter"}}},
				{Kind: domain.KindGitHubIssues, ConfigKeys: []domain.ConfigKey{{Key: "token"}, {Key: "state"}}},
			},
			sinks: []driving.StoreInfo{
				{Kind: domain.KindSQL},
			},
		}

		ports := &Ports{
			Pipeline: &mockPipelineService{},
			Scorer:   &mockScoreService{},
			Catalog:  mockCatalog,
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleListStores(ctx, nil, ListStoresInput{})

		require.NoError(t, err)
		require.Len(t, output.Sources, 2)
		assert.Equal(t, "csv", output.Sources[0].Kind)
		assert.Equal(t, []string{"delimiter"}, output.Sources[0].Options)
		assert.Equal(t, []string{"token", "state"}, output.Sources[1].Options)
		require.Len(t, output.Sinks, 1)
		assert.Equal(t, "sql", output.Sinks[0].Kind)
	})

	t.Run("degrades to empty without a catalog", func(t *testing.T) {
		ports := &Ports{Pipeline: &mockPipelineService{}, Scorer: &mockScoreService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleListStores(ctx, nil, ListStoresInput{})

		require.NoError(t, err)
		assert.Empty(t, output.Sources)
		assert.Empty(t, output.Sinks)
	})
}
