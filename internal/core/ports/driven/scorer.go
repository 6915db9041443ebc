package driven

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// Scorer computes sentiment for texts.
// Implementations are pure: no state is shared across calls or across
// items within a batch, and identical input produces identical output.
type Scorer interface {
	// Score computes the sentiment of one text. Empty or
	// whitespace-only text yields the neutral fallback without invoking
	// the model.
	Score(ctx context.Context, text string) domain.Outcome

	// ScoreBatch scores many texts. The result has the same length and
	// order as texts, including the empty slice. A failure on a single
	// item becomes that item's fallback outcome; the batch never aborts
	// because of one bad item.
	ScoreBatch(ctx context.Context, texts []string) []domain.Outcome
}
