// Package sentiment implements the lexical rule-based sentiment model
// and the text preprocessing it relies on.
package sentiment

import (
	"regexp"
	"strings"
)

// Preprocessor normalizes raw text ahead of scoring.
type Preprocessor struct {
	urls        *regexp.Regexp
	disallowed  *regexp.Regexp
	punctuation *regexp.Regexp
}

// NewPreprocessor creates a preprocessor with its patterns compiled.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		urls:        regexp.MustCompile(`(?:https?|www)\S+`),
		disallowed:  regexp.MustCompile(`[^\w\s.,!?]`),
		punctuation: regexp.MustCompile(`[.,!?]+`),
	}
}

// Normalize cleans one text: lowercases, removes URL-like tokens, strips
// character runs outside letters/digits/whitespace and basic sentence
// punctuation, and trims. Empty or whitespace-only input normalizes to
// the empty string; Normalize never fails.
func (p *Preprocessor) Normalize(text string) string {
	text = strings.ToLower(text)
	text = p.urls.ReplaceAllString(text, "")
	text = p.disallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Tokenize splits a normalized text into word tokens, dropping the
// sentence punctuation Normalize keeps for emphasis detection.
func (p *Preprocessor) Tokenize(normalized string) []string {
	stripped := p.punctuation.ReplaceAllString(normalized, " ")
	return strings.Fields(stripped)
}
