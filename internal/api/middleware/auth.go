package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recipebox/recipe-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxUserEmail = "user_email"
)

// Auth resolves the opaque bearer token to a user and injects the caller's
// identity into context. Missing, malformed and unknown tokens all yield 401.
func Auth(users ports.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := users.ResolveToken(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(CtxUserID, user.ID)
			c.Set(CtxUserEmail, user.Email)

			return next(c)
		}
	}
}
