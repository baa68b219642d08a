package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists name and/or password hash changes. Email is immutable.
	Update(ctx context.Context, user *domain.User) error
}
