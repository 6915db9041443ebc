package services

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// Ensure ScoreService implements the interface.
var _ driving.ScoreService = (*ScoreService)(nil)

// ScoreService serves ad-hoc scoring requests outside a pipeline run.
type ScoreService struct {
	scorer driven.Scorer
}

// NewScoreService creates a score service.
func NewScoreService(scorer driven.Scorer) *ScoreService {
	return &ScoreService{scorer: scorer}
}

// ScoreText computes the sentiment of one text.
func (s *ScoreService) ScoreText(ctx context.Context, text string) domain.Outcome {
	return s.scorer.Score(ctx, text)
}

// ScoreTexts computes sentiments for many texts, preserving order.
func (s *ScoreService) ScoreTexts(ctx context.Context, texts []string) []domain.Outcome {
	return s.scorer.ScoreBatch(ctx, texts)
}
