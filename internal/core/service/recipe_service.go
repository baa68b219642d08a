package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeService implements recipe CRUD plus the tag/ingredient reconciler.
// It is stateless; all state lives in the repositories.
type RecipeService struct {
	recipes     ports.RecipeRepository
	tags        ports.NamedEntityRepository
	ingredients ports.NamedEntityRepository
	logger      zerolog.Logger
}

func NewRecipeService(recipes ports.RecipeRepository, tags, ingredients ports.NamedEntityRepository, logger zerolog.Logger) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		logger:      logger,
	}
}

// Create builds a recipe from the scalar fields, then reconciles the tag and
// ingredient name payloads into owned entities. Reconciliation runs before
// the insert so the recipe document is written fully populated in a single
// operation; a failure mid-request leaves no partially linked recipe.
func (s *RecipeService) Create(ctx context.Context, ownerID string, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	if err := validateScalars(input.Title, input.TimeMinutes, input.Price); err != nil {
		return nil, err
	}

	tags, err := s.reconcile(ctx, s.tags, "tag", ownerID, input.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.reconcile(ctx, s.ingredients, "ingredient", ownerID, input.Ingredients)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &domain.Recipe{
		UserID:      ownerID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        input.Link,
		Description: input.Description,
		Tags:        toTags(tags),
		Ingredients: toIngredients(ingredients),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.recipes.Create(ctx, recipe)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create recipe")
		return nil, err
	}

	metrics.RecipesCreatedTotal.Inc()
	s.logger.Info().Str("recipe_id", created.ID).Str("owner_id", ownerID).Msg("recipe created")
	return created, nil
}

func (s *RecipeService) Get(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	return s.recipes.FindByID(ctx, ownerID, id)
}

// List returns the owner's recipes, most recently created first.
func (s *RecipeService) List(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
	return s.recipes.List(ctx, ownerID)
}

// Update applies a partial update. A relation slice that is present in the
// payload, even an empty one, fully replaces the current set; an absent one is
// left untouched. Scalar fields are last-write-wins per present field.
func (s *RecipeService) Update(ctx context.Context, ownerID, id string, input ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if err := validateScalars(recipe.Title, recipe.TimeMinutes, recipe.Price); err != nil {
		return nil, err
	}

	if input.Tags != nil {
		tags, err := s.reconcile(ctx, s.tags, "tag", ownerID, *input.Tags)
		if err != nil {
			return nil, err
		}
		recipe.Tags = toTags(tags)
	}
	if input.Ingredients != nil {
		ingredients, err := s.reconcile(ctx, s.ingredients, "ingredient", ownerID, *input.Ingredients)
		if err != nil {
			return nil, err
		}
		recipe.Ingredients = toIngredients(ingredients)
	}

	recipe.UpdatedAt = time.Now().UTC()
	if err := s.recipes.Update(ctx, recipe); err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to update recipe")
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, ownerID, id string) error {
	return s.recipes.Delete(ctx, ownerID, id)
}

// reconcile resolves each name payload to an owned entity via get-or-create,
// deduplicating by name so the resulting set has at most one entry per
// distinct name. Input order is irrelevant to the outcome.
func (s *RecipeService) reconcile(ctx context.Context, repo ports.NamedEntityRepository, kind, ownerID string, names []ports.NameInput) ([]ports.NamedEntity, error) {
	resolved := make([]ports.NamedEntity, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, n := range names {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			return nil, domain.Invalid("%s name must not be empty", kind)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		entity, created, err := repo.GetOrCreate(ctx, ownerID, name)
		if err != nil {
			return nil, err
		}
		result := "existing"
		if created {
			result = "created"
		}
		metrics.RelationsReconciledTotal.WithLabelValues(kind, result).Inc()
		resolved = append(resolved, *entity)
	}
	return resolved, nil
}

// validateScalars enforces the recipe field constraints: title required,
// time_minutes >= 0, price a decimal >= 0.
func validateScalars(title string, timeMinutes int, price string) error {
	if strings.TrimSpace(title) == "" {
		return domain.Invalid("title is required")
	}
	if timeMinutes < 0 {
		return domain.Invalid("time_minutes must not be negative")
	}
	p, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return domain.Invalid("price must be a decimal number")
	}
	if p < 0 {
		return domain.Invalid("price must not be negative")
	}
	return nil
}

func toTags(entities []ports.NamedEntity) []domain.Tag {
	tags := make([]domain.Tag, 0, len(entities))
	for _, e := range entities {
		tags = append(tags, e.Tag())
	}
	return tags
}

func toIngredients(entities []ports.NamedEntity) []domain.Ingredient {
	ingredients := make([]domain.Ingredient, 0, len(entities))
	for _, e := range entities {
		ingredients = append(ingredients, e.Ingredient())
	}
	return ingredients
}
