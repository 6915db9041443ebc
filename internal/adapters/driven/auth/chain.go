package auth

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Ensure ChainTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ChainTokenProvider)(nil)

// ChainTokenProvider asks each provider in order and serves the first
// non-empty token. An empty chain behaves like an unconfigured provider.
type ChainTokenProvider struct {
	providers []driven.TokenProvider
}

// NewChainTokenProvider creates a provider trying providers in order.
func NewChainTokenProvider(providers ...driven.TokenProvider) *ChainTokenProvider {
	return &ChainTokenProvider{providers: providers}
}

// GetToken returns the first non-empty token in the chain.
func (p *ChainTokenProvider) GetToken(ctx context.Context) (string, error) {
	for _, provider := range p.providers {
		token, err := provider.GetToken(ctx)
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}
