package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

const recipesCollection = "recipes"

// RecipeRepository persists recipes. Relations are stored as id arrays on
// the recipe document and resolved to (id, name) pairs on reads via the tag
// and ingredient repositories.
type RecipeRepository struct {
	coll        *mongo.Collection
	tags        *NamedEntityRepository
	ingredients *NamedEntityRepository
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{
		coll:        db.Collection(recipesCollection),
		tags:        NewTagRepository(db),
		ingredients: NewIngredientRepository(db),
	}
}

type mongoRecipe struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	UserID        primitive.ObjectID   `bson:"user_id"`
	Title         string               `bson:"title"`
	TimeMinutes   int                  `bson:"time_minutes"`
	Price         string               `bson:"price"`
	Link          string               `bson:"link,omitempty"`
	Description   string               `bson:"description,omitempty"`
	TagIDs        []primitive.ObjectID `bson:"tag_ids"`
	IngredientIDs []primitive.ObjectID `bson:"ingredient_ids"`
	CreatedAt     int64                `bson:"created_at"`
	UpdatedAt     int64                `bson:"updated_at"`
}

// Create inserts the recipe as a single document, relations included, so the
// write is atomic at the store level.
func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	doc, err := toRecipeDoc(recipe)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	created := *recipe
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, ownerID, id string) (*domain.Recipe, error) {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	var mr mongoRecipe
	if err := r.coll.FindOne(ctx, filter).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	recipes, err := r.resolve(ctx, ownerID, []mongoRecipe{mr})
	if err != nil {
		return nil, err
	}
	return recipes[0], nil
}

// List returns the owner's recipes ordered by descending id; ObjectIDs are
// time-ordered, so this is newest-first.
func (r *RecipeRepository) List(ctx context.Context, ownerID string) ([]*domain.Recipe, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": owner},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRecipe
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	return r.resolve(ctx, ownerID, docs)
}

// Update rewrites all mutable fields in a single UpdateOne.
func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	filter, err := ownedFilter(recipe.UserID, recipe.ID)
	if err != nil {
		return err
	}
	doc, err := toRecipeDoc(recipe)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"title":          doc.Title,
		"time_minutes":   doc.TimeMinutes,
		"price":          doc.Price,
		"link":           doc.Link,
		"description":    doc.Description,
		"tag_ids":        doc.TagIDs,
		"ingredient_ids": doc.IngredientIDs,
		"updated_at":     doc.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, err := ownedFilter(ownerID, id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Unlink pulls an entity id out of the named relation on all of the owner's
// recipes.
func (r *RecipeRepository) Unlink(ctx context.Context, ownerID, relation, entityID string) error {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrNotFound
	}
	oid, err := primitive.ObjectIDFromHex(entityID)
	if err != nil {
		return domain.ErrNotFound
	}

	var field string
	switch relation {
	case ports.RelationTags:
		field = "tag_ids"
	case ports.RelationIngredients:
		field = "ingredient_ids"
	default:
		return fmt.Errorf("unlink: unknown relation %q", relation)
	}

	_, err = r.coll.UpdateMany(ctx, bson.M{"user_id": owner}, bson.M{"$pull": bson.M{field: oid}})
	if err != nil {
		return fmt.Errorf("unlink %s: %w", field, err)
	}
	return nil
}

// resolve maps recipe documents to domain recipes, batching the tag and
// ingredient lookups across all documents.
func (r *RecipeRepository) resolve(ctx context.Context, ownerID string, docs []mongoRecipe) ([]*domain.Recipe, error) {
	tagSet := make(map[string]struct{})
	ingredientSet := make(map[string]struct{})
	for _, d := range docs {
		for _, id := range d.TagIDs {
			tagSet[id.Hex()] = struct{}{}
		}
		for _, id := range d.IngredientIDs {
			ingredientSet[id.Hex()] = struct{}{}
		}
	}

	tagsByID, err := fetchByIDs(ctx, r.tags, ownerID, tagSet)
	if err != nil {
		return nil, err
	}
	ingredientsByID, err := fetchByIDs(ctx, r.ingredients, ownerID, ingredientSet)
	if err != nil {
		return nil, err
	}

	recipes := make([]*domain.Recipe, 0, len(docs))
	for _, d := range docs {
		recipe := &domain.Recipe{
			ID:          d.ID.Hex(),
			UserID:      d.UserID.Hex(),
			Title:       d.Title,
			TimeMinutes: d.TimeMinutes,
			Price:       d.Price,
			Link:        d.Link,
			Description: d.Description,
			Tags:        make([]domain.Tag, 0, len(d.TagIDs)),
			Ingredients: make([]domain.Ingredient, 0, len(d.IngredientIDs)),
			CreatedAt:   unixToTime(d.CreatedAt),
			UpdatedAt:   unixToTime(d.UpdatedAt),
		}
		for _, id := range d.TagIDs {
			if e, ok := tagsByID[id.Hex()]; ok {
				recipe.Tags = append(recipe.Tags, e.Tag())
			}
		}
		for _, id := range d.IngredientIDs {
			if e, ok := ingredientsByID[id.Hex()]; ok {
				recipe.Ingredients = append(recipe.Ingredients, e.Ingredient())
			}
		}
		sortTags(recipe.Tags)
		sortIngredients(recipe.Ingredients)
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func fetchByIDs(ctx context.Context, repo *NamedEntityRepository, ownerID string, idSet map[string]struct{}) (map[string]ports.NamedEntity, error) {
	byID := make(map[string]ports.NamedEntity, len(idSet))
	if len(idSet) == 0 {
		return byID, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	entities, err := repo.FindByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		byID[e.ID] = e
	}
	return byID, nil
}

func sortTags(tags []domain.Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
}

func sortIngredients(ingredients []domain.Ingredient) {
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Name < ingredients[j].Name })
}

func toRecipeDoc(recipe *domain.Recipe) (*mongoRecipe, error) {
	owner, err := primitive.ObjectIDFromHex(recipe.UserID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	doc := &mongoRecipe{
		UserID:        owner,
		Title:         recipe.Title,
		TimeMinutes:   recipe.TimeMinutes,
		Price:         recipe.Price,
		Link:          recipe.Link,
		Description:   recipe.Description,
		TagIDs:        make([]primitive.ObjectID, 0, len(recipe.Tags)),
		IngredientIDs: make([]primitive.ObjectID, 0, len(recipe.Ingredients)),
		CreatedAt:     recipe.CreatedAt.Unix(),
		UpdatedAt:     recipe.UpdatedAt.Unix(),
	}

	for _, t := range recipe.Tags {
		oid, err := primitive.ObjectIDFromHex(t.ID)
		if err != nil {
			return nil, fmt.Errorf("recipe tag id %q: %w", t.ID, err)
		}
		doc.TagIDs = append(doc.TagIDs, oid)
	}
	for _, ing := range recipe.Ingredients {
		oid, err := primitive.ObjectIDFromHex(ing.ID)
		if err != nil {
			return nil, fmt.Errorf("recipe ingredient id %q: %w", ing.ID, err)
		}
		doc.IngredientIDs = append(doc.IngredientIDs, oid)
	}
	return doc, nil
}
