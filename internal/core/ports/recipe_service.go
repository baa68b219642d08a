package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// NameInput is the bare-name payload used to reference a tag or ingredient
// in a recipe request. The reconciler resolves it to an owned entity,
// creating one when absent.
type NameInput struct {
	Name string
}

// CreateRecipeInput carries all data needed to create a recipe. The owner is
// always the authenticated caller, never part of the payload.
type CreateRecipeInput struct {
	Title       string
	TimeMinutes int
	Price       string
	Link        string
	Description string
	Tags        []NameInput
	Ingredients []NameInput
}

// UpdateRecipeInput carries a partial recipe update. Nil fields are left
// untouched. A non-nil Tags or Ingredients slice, including an empty one,
// fully replaces the corresponding relation set.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *string
	Link        *string
	Description *string
	Tags        *[]NameInput
	Ingredients *[]NameInput
}

// RecipeService defines the recipe use cases, all scoped to an owner.
type RecipeService interface {
	Create(ctx context.Context, ownerID string, input CreateRecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Recipe, error)
	List(ctx context.Context, ownerID string) ([]*domain.Recipe, error)
	Update(ctx context.Context, ownerID, id string, input UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// NamedEntityService defines the tag/ingredient use cases. Entities are
// created only through recipe reconciliation; the service covers the
// remaining list/rename/delete surface.
type NamedEntityService interface {
	List(ctx context.Context, ownerID string) ([]NamedEntity, error)
	Rename(ctx context.Context, ownerID, id, name string) (*NamedEntity, error)
	Delete(ctx context.Context, ownerID, id string) error
}
