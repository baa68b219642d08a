package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubNamedEntityRepo struct {
	nextID int
	// rows keyed by "<ownerID>/<name>"
	rows map[string]*ports.NamedEntity
}

func newStubNamedEntityRepo() *stubNamedEntityRepo {
	return &stubNamedEntityRepo{rows: make(map[string]*ports.NamedEntity)}
}

func (r *stubNamedEntityRepo) key(ownerID, name string) string {
	return ownerID + "/" + name
}

func (r *stubNamedEntityRepo) GetOrCreate(_ context.Context, ownerID, name string) (*ports.NamedEntity, bool, error) {
	if e, ok := r.rows[r.key(ownerID, name)]; ok {
		clone := *e
		return &clone, false, nil
	}
	r.nextID++
	e := &ports.NamedEntity{ID: fmt.Sprintf("id-%d", r.nextID), UserID: ownerID, Name: name}
	r.rows[r.key(ownerID, name)] = e
	clone := *e
	return &clone, true, nil
}

func (r *stubNamedEntityRepo) FindByID(_ context.Context, ownerID, id string) (*ports.NamedEntity, error) {
	for _, e := range r.rows {
		if e.ID == id && e.UserID == ownerID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubNamedEntityRepo) FindByIDs(_ context.Context, ownerID string, ids []string) ([]ports.NamedEntity, error) {
	var out []ports.NamedEntity
	for _, e := range r.rows {
		if e.UserID != ownerID {
			continue
		}
		for _, id := range ids {
			if e.ID == id {
				out = append(out, *e)
			}
		}
	}
	return out, nil
}

func (r *stubNamedEntityRepo) List(_ context.Context, ownerID string) ([]ports.NamedEntity, error) {
	var out []ports.NamedEntity
	for _, e := range r.rows {
		if e.UserID == ownerID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubNamedEntityRepo) Rename(_ context.Context, ownerID, id, name string) (*ports.NamedEntity, error) {
	if _, taken := r.rows[r.key(ownerID, name)]; taken {
		return nil, domain.ErrNameTaken
	}
	for k, e := range r.rows {
		if e.ID == id && e.UserID == ownerID {
			delete(r.rows, k)
			e.Name = name
			r.rows[r.key(ownerID, name)] = e
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubNamedEntityRepo) Delete(_ context.Context, ownerID, id string) error {
	for k, e := range r.rows {
		if e.ID == id && e.UserID == ownerID {
			delete(r.rows, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

// countRows returns how many rows the owner has with the given name.
func (r *stubNamedEntityRepo) countRows(ownerID, name string) int {
	n := 0
	for _, e := range r.rows {
		if e.UserID == ownerID && e.Name == name {
			n++
		}
	}
	return n
}

type stubRecipeRepo struct {
	nextID    int
	byID      map[string]*domain.Recipe
	createErr error
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{byID: make(map[string]*domain.Recipe)}
}

func (r *stubRecipeRepo) Create(_ context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *recipe
	clone.ID = fmt.Sprintf("recipe-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, ownerID, id string) (*domain.Recipe, error) {
	recipe, ok := r.byID[id]
	if !ok || recipe.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	clone := *recipe
	return &clone, nil
}

// List returns recipes in descending id order, mirroring the Mongo sort.
func (r *stubRecipeRepo) List(_ context.Context, ownerID string) ([]*domain.Recipe, error) {
	var out []*domain.Recipe
	for _, recipe := range r.byID {
		if recipe.UserID == ownerID {
			clone := *recipe
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, recipe *domain.Recipe) error {
	existing, ok := r.byID[recipe.ID]
	if !ok || existing.UserID != recipe.UserID {
		return domain.ErrNotFound
	}
	clone := *recipe
	r.byID[recipe.ID] = &clone
	return nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, ownerID, id string) error {
	recipe, ok := r.byID[id]
	if !ok || recipe.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubRecipeRepo) Unlink(_ context.Context, ownerID, relation, entityID string) error {
	for _, recipe := range r.byID {
		if recipe.UserID != ownerID {
			continue
		}
		switch relation {
		case ports.RelationTags:
			kept := recipe.Tags[:0]
			for _, t := range recipe.Tags {
				if t.ID != entityID {
					kept = append(kept, t)
				}
			}
			recipe.Tags = kept
		case ports.RelationIngredients:
			kept := recipe.Ingredients[:0]
			for _, ing := range recipe.Ingredients {
				if ing.ID != entityID {
					kept = append(kept, ing)
				}
			}
			recipe.Ingredients = kept
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type recipeFixture struct {
	svc         *RecipeService
	recipes     *stubRecipeRepo
	tags        *stubNamedEntityRepo
	ingredients *stubNamedEntityRepo
}

func newRecipeFixture() *recipeFixture {
	recipes := newStubRecipeRepo()
	tags := newStubNamedEntityRepo()
	ingredients := newStubNamedEntityRepo()
	return &recipeFixture{
		svc:         NewRecipeService(recipes, tags, ingredients, zerolog.Nop()),
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
	}
}

func names(inputs ...string) []ports.NameInput {
	out := make([]ports.NameInput, 0, len(inputs))
	for _, n := range inputs {
		out = append(out, ports.NameInput{Name: n})
	}
	return out
}

func tagNames(recipe *domain.Recipe) []string {
	out := make([]string, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		out = append(out, t.Name)
	}
	sort.Strings(out)
	return out
}

// ---------------------------------------------------------------------------
// Create + reconciliation
// ---------------------------------------------------------------------------

func TestRecipeService_Create_ReconcilesTagsAndIngredients(t *testing.T) {
	f := newRecipeFixture()

	recipe, err := f.svc.Create(context.Background(), "userA", ports.CreateRecipeInput{
		Title:       "Chili",
		TimeMinutes: 30,
		Price:       "5.00",
		Tags:        names("curry", "quick"),
		Ingredients: names("beans"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if got := tagNames(recipe); len(got) != 2 || got[0] != "curry" || got[1] != "quick" {
		t.Fatalf("expected tags [curry quick], got %v", got)
	}
	for _, tag := range recipe.Tags {
		if tag.UserID != "userA" {
			t.Fatalf("tag %q owned by %q, want userA", tag.Name, tag.UserID)
		}
	}
	if len(recipe.Ingredients) != 1 || recipe.Ingredients[0].Name != "beans" {
		t.Fatalf("expected ingredients [beans], got %+v", recipe.Ingredients)
	}
	if recipe.Ingredients[0].UserID != "userA" {
		t.Fatalf("ingredient owned by %q, want userA", recipe.Ingredients[0].UserID)
	}
}

func TestRecipeService_Create_ReusesExistingTagRows(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
			Title:       fmt.Sprintf("Dish %d", i),
			TimeMinutes: 10,
			Price:       "2.50",
			Tags:        names("vegan"),
		})
		if err != nil {
			t.Fatalf("Create %d returned error: %v", i, err)
		}
	}

	if n := f.tags.countRows("userA", "vegan"); n != 1 {
		t.Fatalf("expected exactly one vegan tag row, got %d", n)
	}
}

func TestRecipeService_Create_DeduplicatesRepeatedNames(t *testing.T) {
	f := newRecipeFixture()

	recipe, err := f.svc.Create(context.Background(), "userA", ports.CreateRecipeInput{
		Title:       "Stew",
		TimeMinutes: 45,
		Price:       "7.00",
		Tags:        names("hearty", "hearty"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(recipe.Tags) != 1 {
		t.Fatalf("expected one tag after dedup, got %d", len(recipe.Tags))
	}
	if n := f.tags.countRows("userA", "hearty"); n != 1 {
		t.Fatalf("expected one tag row, got %d", n)
	}
}

func TestRecipeService_Create_IsolatesOwners(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	for _, owner := range []string{"userA", "userB"} {
		_, err := f.svc.Create(ctx, owner, ports.CreateRecipeInput{
			Title:       "Salsa",
			TimeMinutes: 5,
			Price:       "1.00",
			Tags:        names("spicy"),
		})
		if err != nil {
			t.Fatalf("Create for %s returned error: %v", owner, err)
		}
	}

	// Two distinct rows, one per owner.
	if n := f.tags.countRows("userA", "spicy"); n != 1 {
		t.Fatalf("userA spicy rows = %d, want 1", n)
	}
	if n := f.tags.countRows("userB", "spicy"); n != 1 {
		t.Fatalf("userB spicy rows = %d, want 1", n)
	}

	listA, err := f.svc.List(ctx, "userA")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(listA) != 1 {
		t.Fatalf("userA should see exactly one recipe, got %d", len(listA))
	}
	if listA[0].Tags[0].UserID != "userA" {
		t.Fatalf("userA sees a tag owned by %q", listA[0].Tags[0].UserID)
	}
}

func TestRecipeService_Create_Validation(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input ports.CreateRecipeInput
	}{
		{"missing title", ports.CreateRecipeInput{Price: "1.00"}},
		{"negative time", ports.CreateRecipeInput{Title: "X", TimeMinutes: -1, Price: "1.00"}},
		{"negative price", ports.CreateRecipeInput{Title: "X", Price: "-1.00"}},
		{"non-decimal price", ports.CreateRecipeInput{Title: "X", Price: "free"}},
		{"blank tag name", ports.CreateRecipeInput{Title: "X", Price: "1.00", Tags: names("  ")}},
	}
	for _, tc := range cases {
		if _, err := f.svc.Create(ctx, "userA", tc.input); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}

	if len(f.recipes.byID) != 0 {
		t.Fatalf("no recipe should be persisted on validation failure")
	}
}

// ---------------------------------------------------------------------------
// Update semantics
// ---------------------------------------------------------------------------

func TestRecipeService_Update_AbsentTagsKeyLeavesTagsUntouched(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00", Tags: names("spicy"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	newTitle := "Smoky Chili"
	updated, err := f.svc.Update(ctx, "userA", recipe.ID, ports.UpdateRecipeInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Smoky Chili" {
		t.Fatalf("title = %q, want Smoky Chili", updated.Title)
	}
	if got := tagNames(updated); len(got) != 1 || got[0] != "spicy" {
		t.Fatalf("tags changed on scalar-only update: %v", got)
	}
}

func TestRecipeService_Update_EmptyTagListClearsAllTags(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00", Tags: names("spicy", "quick"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	empty := []ports.NameInput{}
	updated, err := f.svc.Update(ctx, "userA", recipe.ID, ports.UpdateRecipeInput{Tags: &empty})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Fatalf("expected empty tag set, got %v", tagNames(updated))
	}

	// Clearing links does not delete the tag rows themselves.
	if n := f.tags.countRows("userA", "spicy"); n != 1 {
		t.Fatalf("tag row was deleted by clearing links")
	}
}

func TestRecipeService_Update_ReplacesTagSet(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00", Tags: names("spicy"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	replacement := names("mild", "weeknight")
	updated, err := f.svc.Update(ctx, "userA", recipe.ID, ports.UpdateRecipeInput{Tags: &replacement})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got := tagNames(updated)
	if len(got) != 2 || got[0] != "mild" || got[1] != "weeknight" {
		t.Fatalf("expected tags [mild weeknight], got %v", got)
	}
}

func TestRecipeService_Update_IngredientsIndependentOfTags(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00",
		Tags: names("spicy"), Ingredients: names("beans"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	empty := []ports.NameInput{}
	updated, err := f.svc.Update(ctx, "userA", recipe.ID, ports.UpdateRecipeInput{Ingredients: &empty})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(updated.Ingredients) != 0 {
		t.Fatalf("ingredients should be cleared")
	}
	if got := tagNames(updated); len(got) != 1 || got[0] != "spicy" {
		t.Fatalf("tags must be untouched by an ingredients-only update, got %v", got)
	}
}

func TestRecipeService_Update_ValidatesMergedScalars(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	negative := -5
	if _, err := f.svc.Update(ctx, "userA", recipe.ID, ports.UpdateRecipeInput{TimeMinutes: &negative}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative time, got %v", err)
	}

	// The stored recipe is unchanged after the failed update.
	current, err := f.svc.Get(ctx, "userA", recipe.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if current.TimeMinutes != 30 {
		t.Fatalf("failed update mutated stored recipe: time_minutes = %d", current.TimeMinutes)
	}
}

func TestRecipeService_Update_ForeignRecipeBehavesAsMissing(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	title := "Hijacked"
	if _, err := f.svc.Update(ctx, "userB", recipe.ID, ports.UpdateRecipeInput{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign id, got %v", err)
	}
	if err := f.svc.Delete(ctx, "userB", recipe.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if _, err := f.svc.Get(ctx, "userB", recipe.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign get, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List ordering
// ---------------------------------------------------------------------------

func TestRecipeService_List_NewestFirst(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
			Title: title, TimeMinutes: 1, Price: "1.00",
		}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := f.svc.List(ctx, "userA")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(list))
	}
	if list[0].Title != "Third" || list[2].Title != "First" {
		t.Fatalf("expected newest-first ordering, got %q..%q", list[0].Title, list[2].Title)
	}
}
