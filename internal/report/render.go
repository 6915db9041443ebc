package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

var displayOrder = []domain.Label{
	domain.LabelPositive,
	domain.LabelNegative,
	domain.LabelNeutral,
}

// Render formats the summary as the plain-text report artifact.
func Render(summary *domain.Summary) string {
	var b strings.Builder

	b.WriteString("Sentiment Analysis Summary\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	b.WriteString("Sentiment Distribution:\n")
	for _, label := range displayOrder {
		fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", titleCase(string(label)), summary.Count(label), summary.Percentage(label))
	}
	b.WriteString("\n")

	b.WriteString("Polarity Statistics:\n")
	fmt.Fprintf(&b, "  Mean: %.4f\n", summary.Polarity.Mean)
	fmt.Fprintf(&b, "  Median: %.4f\n", summary.Polarity.Median)
	fmt.Fprintf(&b, "  Std Dev: %.4f\n", summary.Polarity.StdDev)
	fmt.Fprintf(&b, "  Min: %.4f\n", summary.Polarity.Min)
	fmt.Fprintf(&b, "  Max: %.4f\n", summary.Polarity.Max)
	b.WriteString("\n")

	b.WriteString("Subjectivity Statistics:\n")
	fmt.Fprintf(&b, "  Mean: %.4f\n", summary.Subjectivity.Mean)
	fmt.Fprintf(&b, "  Median: %.4f\n", summary.Subjectivity.Median)
	fmt.Fprintf(&b, "  Std Dev: %.4f\n", summary.Subjectivity.StdDev)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Total Records Processed: %d\n", summary.TotalRows)
	fmt.Fprintf(&b, "Rows Using Fallback Score: %d\n", summary.Warnings)

	return b.String()
}

// DefaultPath places the report artifact beside the primary output.
func DefaultPath(outputLocation string) string {
	return outputLocation + ".summary.txt"
}

// Write renders the summary into path, creating parent directories as
// needed and overwriting any existing file.
func Write(summary *domain.Summary, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Render(summary)), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
