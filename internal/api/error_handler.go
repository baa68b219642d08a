package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// Stable machine-readable error kinds surfaced alongside the message.
const (
	kindValidation     = "validation_error"
	kindAuthentication = "authentication_error"
	kindNotFound       = "not_found"
	kindInternal       = "internal_error"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
//
// Ids outside the caller's ownership scope map to 404 rather than 403, so
// responses never reveal whether a guessed id exists.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg, Kind: kind})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (bind failures, 404 from router, handler-raised
	// HTTPErrors carrying validation detail).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, kindForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, kindValidation, err.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, kindValidation, "email already registered"
	case errors.Is(err, domain.ErrNameTaken):
		return http.StatusBadRequest, kindValidation, "name already in use"
	case errors.Is(err, domain.ErrInvalidCredentials):
		// Bad login credentials answer 400 on the token endpoint; a missing
		// or invalid bearer token is raised as a 401 HTTPError by the auth
		// middleware before it ever reaches this branch.
		return http.StatusBadRequest, kindValidation, "unable to authenticate with provided credentials"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, kindNotFound, "not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, kindInternal, "internal server error"
}

func kindForStatus(code int) string {
	switch {
	case code == http.StatusUnauthorized:
		return kindAuthentication
	case code == http.StatusNotFound:
		return kindNotFound
	case code >= 400 && code < 500:
		return kindValidation
	default:
		return kindInternal
	}
}
