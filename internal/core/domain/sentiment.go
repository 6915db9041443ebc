package domain

// Label is the categorical sentiment derived from polarity.
type Label string

const (
	// LabelPositive marks strictly positive polarity.
	LabelPositive Label = "positive"
	// LabelNegative marks strictly negative polarity.
	LabelNegative Label = "negative"
	// LabelNeutral marks exactly-zero polarity.
	LabelNeutral Label = "neutral"
)

// Column names added to a dataset by scoring.
const (
	ColumnPolarity     = "polarity"
	ColumnSubjectivity = "subjectivity"
	ColumnSentiment    = "sentiment"
	ColumnProcessedAt  = "processed_at"
)

// Sentiment is the scored result for one text.
type Sentiment struct {
	// Polarity is the valence, -1 (most negative) to +1 (most positive).
	Polarity float64

	// Subjectivity ranges 0 (objective) to 1 (subjective).
	Subjectivity float64

	// Label is derived from Polarity alone; subjectivity never affects it.
	Label Label
}

// LabelFor derives the label from a polarity value.
// Only an exact zero maps to neutral.
func LabelFor(polarity float64) Label {
	switch {
	case polarity > 0:
		return LabelPositive
	case polarity < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// NeutralSentiment returns the result used for empty or unscoreable text.
func NeutralSentiment() Sentiment {
	return Sentiment{Polarity: 0.0, Subjectivity: 0.0, Label: LabelNeutral}
}

// Outcome pairs a sentiment with how it was produced, so callers can
// count substituted results instead of losing them to a swallowed error.
// The sentiment is embedded; its fields read directly off the outcome.
type Outcome struct {
	// Sentiment is the result, real or substituted.
	Sentiment

	// Fallback is true when the neutral fallback stands in for a score.
	Fallback bool

	// Err holds the recovered cause when a failure forced the fallback.
	// It is nil for empty-input fallbacks and for real scores.
	Err error
}

// Scored returns an outcome for a successfully computed sentiment.
func Scored(s Sentiment) Outcome {
	return Outcome{Sentiment: s}
}

// FallbackOutcome returns the neutral fallback, optionally carrying the
// recovered cause.
func FallbackOutcome(err error) Outcome {
	return Outcome{Sentiment: NeutralSentiment(), Fallback: true, Err: err}
}
