package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

func TestNamedEntityService_List_OrderedByName(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00",
		Tags: names("spicy", "beans", "quick"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	tagSvc := NewTagService(f.tags, f.recipes, zerolog.Nop())
	list, err := tagSvc.List(ctx, "userA")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(list))
	}
	for i, want := range []string{"beans", "quick", "spicy"} {
		if list[i].Name != want {
			t.Fatalf("position %d = %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestNamedEntityService_Rename(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	tagSvc := NewTagService(f.tags, f.recipes, zerolog.Nop())

	entity, _, err := f.tags.GetOrCreate(ctx, "userA", "vegan")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}

	renamed, err := tagSvc.Rename(ctx, "userA", entity.ID, "plant-based")
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if renamed.Name != "plant-based" {
		t.Fatalf("name = %q, want plant-based", renamed.Name)
	}

	if _, err := tagSvc.Rename(ctx, "userA", entity.ID, "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("blank rename: expected ErrValidation, got %v", err)
	}
}

func TestNamedEntityService_Rename_CollisionRejected(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	tagSvc := NewTagService(f.tags, f.recipes, zerolog.Nop())

	first, _, err := f.tags.GetOrCreate(ctx, "userA", "vegan")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if _, _, err := f.tags.GetOrCreate(ctx, "userA", "quick"); err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}

	if _, err := tagSvc.Rename(ctx, "userA", first.ID, "quick"); !errors.Is(err, domain.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestNamedEntityService_Delete_UnlinksFromRecipes(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, "userA", ports.CreateRecipeInput{
		Title: "Chili", TimeMinutes: 30, Price: "5.00",
		Tags: names("spicy", "quick"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var spicyID string
	for _, tag := range recipe.Tags {
		if tag.Name == "spicy" {
			spicyID = tag.ID
		}
	}

	tagSvc := NewTagService(f.tags, f.recipes, zerolog.Nop())
	if err := tagSvc.Delete(ctx, "userA", spicyID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	current, err := f.svc.Get(ctx, "userA", recipe.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got := tagNames(current); len(got) != 1 || got[0] != "quick" {
		t.Fatalf("expected only [quick] after delete, got %v", got)
	}

	list, err := tagSvc.List(ctx, "userA")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "quick" {
		t.Fatalf("tag row not removed from store")
	}
}

func TestNamedEntityService_Delete_ForeignIDBehavesAsMissing(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()
	tagSvc := NewTagService(f.tags, f.recipes, zerolog.Nop())

	entity, _, err := f.tags.GetOrCreate(ctx, "userA", "vegan")
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}

	if err := tagSvc.Delete(ctx, "userB", entity.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign id, got %v", err)
	}
}
