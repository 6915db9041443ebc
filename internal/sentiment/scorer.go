package sentiment

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

const (
	// negationFactor flips and dampens polarity after a negator.
	negationFactor = -0.5

	// emphasisStep is the polarity boost per exclamation mark, applied
	// multiplicatively so an exact-zero polarity stays zero.
	emphasisStep = 0.05

	// maxEmphasis caps how many exclamation marks count.
	maxEmphasis = 3
)

// Ensure Analyzer implements the port.
var _ driven.Scorer = (*Analyzer)(nil)

// Analyzer scores texts against the embedded word-valence lexicon.
// It holds no mutable state; one instance is safe for concurrent use
// and identical input always produces identical output.
type Analyzer struct {
	pre        *Preprocessor
	batchLimit int
}

// NewAnalyzer creates a ready-to-use analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		pre:        NewPreprocessor(),
		batchLimit: runtime.GOMAXPROCS(0),
	}
}

// Score computes the sentiment of one text.
// Empty or whitespace-only text yields the neutral fallback without
// touching the lexicon.
func (a *Analyzer) Score(ctx context.Context, text string) domain.Outcome {
	if err := ctx.Err(); err != nil {
		return domain.FallbackOutcome(err)
	}

	normalized := a.pre.Normalize(text)
	if normalized == "" {
		return domain.FallbackOutcome(nil)
	}

	return domain.Scored(a.scoreNormalized(normalized))
}

// ScoreBatch scores texts preserving length and order. Items are scored
// in parallel; results are written to their own index so no ordering or
// shared state depends on scheduling.
func (a *Analyzer) ScoreBatch(ctx context.Context, texts []string) []domain.Outcome {
	outcomes := make([]domain.Outcome, len(texts))
	if len(texts) == 0 {
		return outcomes
	}

	eg := new(errgroup.Group)
	eg.SetLimit(a.batchLimit)
	for i := range texts {
		eg.Go(func() error {
			outcomes[i] = a.scoreItem(ctx, texts[i])
			return nil
		})
	}
	// Item failures are already recorded as fallback outcomes.
	_ = eg.Wait()

	return outcomes
}

// scoreItem scores one batch item. A panic on one item must not abort
// the batch; it becomes that item's fallback outcome.
func (a *Analyzer) scoreItem(ctx context.Context, text string) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.FallbackOutcome(fmt.Errorf("scoring text: %v", r))
		}
	}()
	return a.Score(ctx, text)
}

// scoreNormalized walks the tokens of a normalized text, averaging the
// weights of lexicon hits. Negators invert the following hit, boosters
// scale it, and trailing exclamation marks amplify the final polarity.
func (a *Analyzer) scoreNormalized(normalized string) domain.Sentiment {
	emphasis := strings.Count(normalized, "!")
	tokens := a.pre.Tokenize(normalized)

	var polSum, subjSum float64
	hits := 0
	factor := 1.0
	negated := false

	for _, tok := range tokens {
		if _, ok := negators[tok]; ok {
			negated = true
			continue
		}
		if f, ok := boosters[tok]; ok {
			factor *= f
			continue
		}

		e, ok := lexicon[tok]
		if !ok {
			// Modifiers only reach across adjacent words.
			factor, negated = 1.0, false
			continue
		}

		p := e.polarity * factor
		if negated {
			p *= negationFactor
		}
		polSum += p
		subjSum += e.subjectivity
		hits++
		factor, negated = 1.0, false
	}

	if hits == 0 {
		// No lexicon hits: an objectively neutral text, not a fallback.
		return domain.Sentiment{Polarity: 0, Subjectivity: 0, Label: domain.LabelNeutral}
	}

	pol := polSum / float64(hits)
	if emphasis > 0 {
		n := emphasis
		if n > maxEmphasis {
			n = maxEmphasis
		}
		pol *= 1 + emphasisStep*float64(n)
	}
	pol = clamp(pol, -1, 1)
	subj := clamp(subjSum/float64(hits), 0, 1)

	return domain.Sentiment{
		Polarity:     pol,
		Subjectivity: subj,
		Label:        domain.LabelFor(pol),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
