package ports

import "context"

// TokenStore issues and resolves opaque bearer tokens. A user has at most
// one active token: issuing a new one invalidates the previous token.
type TokenStore interface {
	// Issue creates a fresh token bound to userID, replacing any prior token.
	Issue(ctx context.Context, userID string) (string, error)
	// Resolve returns the user id a token is bound to. Returns
	// domain.ErrInvalidCredentials for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (string, error)
}
