package driven

import "context"

// TokenProvider supplies access tokens for authenticated store APIs.
// Store kinds that need no token never call it.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// Returns empty string when no token is configured.
	GetToken(ctx context.Context) (string, error)
}
