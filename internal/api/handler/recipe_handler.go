package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations. Every call is
// scoped to the authenticated caller; the owner never comes from the payload.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// List handles GET /recipes/.
//
// @Summary      List the caller's recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   recipeResponse
// @Failure      401  {object}  errorResponse
// @Router       /recipes/ [get]
func (h *RecipeHandler) List(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	recipes, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	resp := make([]recipeResponse, 0, len(recipes))
	for _, r := range recipes {
		resp = append(resp, toRecipeResponse(r))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /recipes/.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecipeRequest  true  "Recipe fields; tags and ingredients are bare names, created for the caller when absent"
// @Success      201   {object}  recipeDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /recipes/ [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Create(c.Request().Context(), ownerID, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRecipeDetailResponse(recipe))
}

// Get handles GET /recipes/:id/.
//
// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  recipeDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /recipes/{id}/ [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.Get(c.Request().Context(), ownerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Update handles PUT and PATCH /recipes/:id/. Fields absent from the payload
// are untouched; a present tags/ingredients key replaces that set entirely,
// so an empty list clears it.
//
// @Summary      Update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Recipe id"
// @Param        body  body      updateRecipeRequest  true  "Fields to change"
// @Success      200   {object}  recipeDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /recipes/{id}/ [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.service.Update(c.Request().Context(), ownerID, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Delete handles DELETE /recipes/:id/.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipe id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /recipes/{id}/ [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
