// Package auth provides TokenProvider implementations for the API-backed
// stores. Tokens come from the config file, the environment, or both.
package auth

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider serves a fixed token, typically one read from the
// config file. Static tokens never refresh.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider serving token as-is.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken returns the configured token, empty when unconfigured.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return p.token, nil
}
