package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/api/middleware"
)

// ctxOwnerID extracts the authenticated caller's id injected by the Auth
// middleware. An empty id means the middleware did not run on this route;
// fail fast with 401 rather than querying with an unscoped owner.
func ctxOwnerID(c echo.Context) (string, error) {
	ownerID, _ := c.Get(middleware.CtxUserID).(string)
	if ownerID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return ownerID, nil
}
