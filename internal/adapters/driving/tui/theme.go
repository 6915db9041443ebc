package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Positive style for positive-label rows.
	Positive lipgloss.Style

	// Negative style for negative-label rows.
	Negative lipgloss.Style

	// Neutral style for neutral-label rows.
	Neutral lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Spinner style for the progress spinner.
	Spinner lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Positive: lipgloss.NewStyle().
			Foreground(theme.Success),

		Negative: lipgloss.NewStyle().
			Foreground(theme.Error),

		Neutral: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// RenderSummary formats a run summary with the default styles. The CLI
// prints it after the program exits, since the alt screen wipes the
// final view.
func RenderSummary(summary *domain.Summary) string {
	if summary == nil {
		return ""
	}

	styles := DefaultStyles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Sentiment Analysis Summary"))
	b.WriteString("\n\n")

	rows := []struct {
		label domain.Label
		style lipgloss.Style
	}{
		{domain.LabelPositive, styles.Positive},
		{domain.LabelNegative, styles.Negative},
		{domain.LabelNeutral, styles.Neutral},
	}
	for _, row := range rows {
		line := fmt.Sprintf("  %-9s %d (%.1f%%)", row.label, summary.Count(row.label), summary.Percentage(row.label))
		b.WriteString(row.style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  polarity      mean %+.4f  min %+.4f  max %+.4f\n",
		summary.Polarity.Mean, summary.Polarity.Min, summary.Polarity.Max))
	b.WriteString(fmt.Sprintf("  subjectivity  mean %.4f\n", summary.Subjectivity.Mean))

	elapsed := summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond)
	footer := fmt.Sprintf("%d rows in %s", summary.TotalRows, elapsed)
	if summary.Warnings > 0 {
		footer += fmt.Sprintf(", %d fallback rows", summary.Warnings)
	}
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(footer))
	b.WriteString("\n")

	return b.String()
}
