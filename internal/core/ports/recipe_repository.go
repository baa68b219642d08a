package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// RecipeRepository defines persistence operations for recipes. Every query
// is filtered by ownerID; an id owned by another user behaves exactly like
// a missing one (domain.ErrNotFound).
type RecipeRepository interface {
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	// List returns the owner's recipes ordered by descending id
	// (most recently created first).
	List(ctx context.Context, ownerID string) ([]*domain.Recipe, error)
	Update(ctx context.Context, r *domain.Recipe) error
	Delete(ctx context.Context, ownerID, id string) error
	// Unlink removes an entity id from the named relation on all of the
	// owner's recipes. Used when a tag or ingredient is deleted.
	Unlink(ctx context.Context, ownerID, relation, entityID string) error
}

// Relation names accepted by RecipeRepository.Unlink.
const (
	RelationTags        = "tags"
	RelationIngredients = "ingredients"
)
