package mcp

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// mockPipelineService is a mock implementation of driving.PipelineService.
type mockPipelineService struct {
	dataset  *domain.Dataset
	summary  *domain.Summary
	err      error
	state    domain.RunState
	progress driving.Progress

	lastSource domain.SourceConfig
	lastDest   domain.DestConfig
}

func (m *mockPipelineService) Run(
	_ context.Context,
	source domain.SourceConfig,
	dest domain.DestConfig,
) (*domain.Dataset, *domain.Summary, error) {
	m.lastSource = source
	m.lastDest = dest
	return m.dataset, m.summary, m.err
}

func (m *mockPipelineService) State() domain.RunState {
	return m.state
}

func (m *mockPipelineService) Progress() driving.Progress {
	return m.progress
}

// mockScoreService is a mock implementation of driving.ScoreService.
type mockScoreService struct {
	outcome domain.Outcome
}

func (m *mockScoreService) ScoreText(_ context.Context, _ string) domain.Outcome {
	return m.outcome
}

func (m *mockScoreService) ScoreTexts(_ context.Context, texts []string) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(texts))
	for i := range texts {
		outcomes[i] = m.outcome
	}
	return outcomes
}

// mockStoreCatalog is a mock implementation of driving.StoreCatalog.
type mockStoreCatalog struct {
	sources []driving.StoreInfo
	sinks   []driving.StoreInfo
	err     error
}

func (m *mockStoreCatalog) Sources() []driving.StoreInfo {
	return m.sources
}

func (m *mockStoreCatalog) Sinks() []driving.StoreInfo {
	return m.sinks
}

func (m *mockStoreCatalog) ValidateSourceConfig(_ domain.SourceConfig) error {
	return m.err
}

func (m *mockStoreCatalog) ValidateDestConfig(_ domain.DestConfig) error {
	return m.err
}
