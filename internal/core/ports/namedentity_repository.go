package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// NamedEntity is the owner-scoped (id, name) shape shared by tags and
// ingredients.
type NamedEntity struct {
	ID     string
	UserID string
	Name   string
}

// NamedEntityRepository defines persistence for tags and ingredients.
// The two kinds are structurally identical; one implementation is
// instantiated per backing collection.
type NamedEntityRepository interface {
	// GetOrCreate returns the entity with the given (owner, name) pair,
	// creating it when absent; created reports whether a new row was
	// inserted. At most one row exists per pair; a concurrent duplicate
	// insert is resolved by re-fetching the winner.
	GetOrCreate(ctx context.Context, ownerID, name string) (entity *NamedEntity, created bool, err error)
	FindByID(ctx context.Context, ownerID, id string) (*NamedEntity, error)
	FindByIDs(ctx context.Context, ownerID string, ids []string) ([]NamedEntity, error)
	// List returns the owner's entities ordered by ascending name.
	List(ctx context.Context, ownerID string) ([]NamedEntity, error)
	// Rename changes the entity's name. Returns domain.ErrNameTaken when the
	// owner already has an entity with the new name.
	Rename(ctx context.Context, ownerID, id, name string) (*NamedEntity, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Tag converts the entity to its domain tag form.
func (e NamedEntity) Tag() domain.Tag {
	return domain.Tag{ID: e.ID, UserID: e.UserID, Name: e.Name}
}

// Ingredient converts the entity to its domain ingredient form.
func (e NamedEntity) Ingredient() domain.Ingredient {
	return domain.Ingredient{ID: e.ID, UserID: e.UserID, Name: e.Name}
}
