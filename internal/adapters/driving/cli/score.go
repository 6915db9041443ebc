package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score [text]...",
	Short: "Score one or more texts",
	Long: `Scores each text argument with the lexicon-based analyzer and prints
its polarity, subjectivity and sentiment label.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	if scoreService == nil {
		return errors.New("score service not configured")
	}

	outcomes := scoreService.ScoreTexts(cmd.Context(), args)

	if scoreJSON {
		return outputScoreJSON(cmd, args, outcomes)
	}
	return outputScoreTable(cmd, args, outcomes)
}

type scoreOutput struct {
	Text         string  `json:"text"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        string  `json:"label"`
	Fallback     bool    `json:"fallback,omitempty"`
}

func outputScoreJSON(cmd *cobra.Command, texts []string, outcomes []domain.Outcome) error {
	out := make([]scoreOutput, len(outcomes))
	for i, outcome := range outcomes {
		out[i] = scoreOutput{
			Text:         texts[i],
			Polarity:     outcome.Sentiment.Polarity,
			Subjectivity: outcome.Sentiment.Subjectivity,
			Label:        string(outcome.Sentiment.Label),
			Fallback:     outcome.Fallback,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputScoreTable(cmd *cobra.Command, texts []string, outcomes []domain.Outcome) error {
	for i, outcome := range outcomes {
		cmd.Printf("%-8s  polarity=%+.4f  subjectivity=%.4f  %q\n",
			outcome.Sentiment.Label,
			outcome.Sentiment.Polarity,
			outcome.Sentiment.Subjectivity,
			truncate(texts[i], 60),
		)
	}
	return nil
}

// truncate shortens s for single-line display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
