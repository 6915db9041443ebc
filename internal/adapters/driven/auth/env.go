package auth

import (
	"context"
	"os"

	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads the token from an environment variable on every
// call, so a newly exported token takes effect without reconstruction.
type EnvTokenProvider struct {
	variable string
}

// NewEnvTokenProvider creates a provider reading the named variable.
func NewEnvTokenProvider(variable string) *EnvTokenProvider {
	return &EnvTokenProvider{variable: variable}
}

// GetToken returns the variable's current value, empty when unset.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	return os.Getenv(p.variable), nil
}
