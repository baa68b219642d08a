package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateSelfInput carries the self-service profile changes. Nil fields are
// left untouched; a non-nil Password is re-hashed before storage. Email is
// immutable.
type UpdateSelfInput struct {
	Name     *string
	Password *string
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Authenticate verifies credentials and returns a fresh bearer token.
	// Unknown email and wrong password fail identically.
	Authenticate(ctx context.Context, email, password string) (string, error)
	// ResolveToken maps a bearer token to its user, or
	// domain.ErrInvalidCredentials.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
	GetSelf(ctx context.Context, userID string) (*domain.User, error)
	UpdateSelf(ctx context.Context, userID string, input UpdateSelfInput) (*domain.User, error)
}
