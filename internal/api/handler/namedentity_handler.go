package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/ports"
)

// NamedEntityHandler serves the tag and ingredient endpoints. There is no
// create endpoint: entities come into existence only through recipe
// reconciliation. One handler instance is registered per kind.
type NamedEntityHandler struct {
	service ports.NamedEntityService
}

func NewNamedEntityHandler(service ports.NamedEntityService) *NamedEntityHandler {
	return &NamedEntityHandler{service: service}
}

// List handles GET /tags/ and GET /ingredients/, ordered by ascending name.
//
// @Summary      List the caller's tags or ingredients
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   namedEntityResponse
// @Failure      401  {object}  errorResponse
// @Router       /tags/ [get]
func (h *NamedEntityHandler) List(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	entities, err := h.service.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	resp := make([]namedEntityResponse, 0, len(entities))
	for _, e := range entities {
		resp = append(resp, namedEntityResponse{ID: e.ID, Name: e.Name})
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT and PATCH /tags/:id/ and /ingredients/:id/.
//
// @Summary      Rename a tag or ingredient
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Entity id"
// @Param        body  body      nameRequest  true  "New name"
// @Success      200   {object}  namedEntityResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /tags/{id}/ [patch]
func (h *NamedEntityHandler) Update(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entity, err := h.service.Rename(c.Request().Context(), ownerID, c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, namedEntityResponse{ID: entity.ID, Name: entity.Name})
}

// Delete handles DELETE /tags/:id/ and /ingredients/:id/. The entity is also
// unlinked from every recipe of the caller that references it.
//
// @Summary      Delete a tag or ingredient
// @Tags         catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Entity id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /tags/{id}/ [delete]
func (h *NamedEntityHandler) Delete(c echo.Context) error {
	ownerID, err := ctxOwnerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
