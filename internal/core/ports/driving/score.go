package driving

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// ScoreService scores ad-hoc texts outside a pipeline run.
// Used by the score command and the MCP score tool.
type ScoreService interface {
	// ScoreText computes the sentiment of one text.
	ScoreText(ctx context.Context, text string) domain.Outcome

	// ScoreTexts computes sentiments for many texts, preserving order.
	ScoreTexts(ctx context.Context, texts []string) []domain.Outcome
}
