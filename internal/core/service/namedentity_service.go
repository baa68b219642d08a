package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// NamedEntityService covers the tag/ingredient surface outside the
// reconciler: listing, renaming and deleting. Creation happens only through
// recipe reconciliation. The same implementation serves both kinds; the
// router instantiates it once for tags and once for ingredients.
type NamedEntityService struct {
	kind    string
	repo    ports.NamedEntityRepository
	recipes ports.RecipeRepository
	// relation is the recipe field to unlink from on delete.
	relation string
	logger   zerolog.Logger
}

func NewTagService(repo ports.NamedEntityRepository, recipes ports.RecipeRepository, logger zerolog.Logger) *NamedEntityService {
	return &NamedEntityService{kind: "tag", repo: repo, recipes: recipes, relation: ports.RelationTags, logger: logger}
}

func NewIngredientService(repo ports.NamedEntityRepository, recipes ports.RecipeRepository, logger zerolog.Logger) *NamedEntityService {
	return &NamedEntityService{kind: "ingredient", repo: repo, recipes: recipes, relation: ports.RelationIngredients, logger: logger}
}

// List returns the owner's entities ordered by ascending name.
func (s *NamedEntityService) List(ctx context.Context, ownerID string) ([]ports.NamedEntity, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *NamedEntityService) Rename(ctx context.Context, ownerID, id, name string) (*ports.NamedEntity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("%s name must not be empty", s.kind)
	}
	return s.repo.Rename(ctx, ownerID, id, name)
}

// Delete removes the entity and unlinks it from every recipe of the owner
// that references it. The unlink runs first so an interruption between the
// two writes leaves an unlinked row rather than a dangling reference.
func (s *NamedEntityService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.repo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.recipes.Unlink(ctx, ownerID, s.relation, id); err != nil {
		s.logger.Error().Err(err).Str("kind", s.kind).Str("id", id).Msg("failed to unlink from recipes")
		return err
	}
	return s.repo.Delete(ctx, ownerID, id)
}
