package handler

import (
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// --- Request to service input ---

func toCreateInput(req createRecipeRequest) ports.CreateRecipeInput {
	return ports.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
		Tags:        toNameInputs(req.Tags),
		Ingredients: toNameInputs(req.Ingredients),
	}
}

func toUpdateInput(req updateRecipeRequest) ports.UpdateRecipeInput {
	input := ports.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	}
	if req.Tags != nil {
		tags := toNameInputs(*req.Tags)
		input.Tags = &tags
	}
	if req.Ingredients != nil {
		ingredients := toNameInputs(*req.Ingredients)
		input.Ingredients = &ingredients
	}
	return input
}

func toNameInputs(names []nameRequest) []ports.NameInput {
	inputs := make([]ports.NameInput, 0, len(names))
	for _, n := range names {
		inputs = append(inputs, ports.NameInput{Name: n.Name})
	}
	return inputs
}

// --- Domain to HTTP response ---

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Tags:        make([]namedEntityResponse, 0, len(r.Tags)),
		Ingredients: make([]namedEntityResponse, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		resp.Tags = append(resp.Tags, namedEntityResponse{ID: t.ID, Name: t.Name})
	}
	for _, ing := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, namedEntityResponse{ID: ing.ID, Name: ing.Name})
	}
	return resp
}

func toRecipeDetailResponse(r *domain.Recipe) recipeDetailResponse {
	return recipeDetailResponse{
		recipeResponse: toRecipeResponse(r),
		Description:    r.Description,
	}
}
