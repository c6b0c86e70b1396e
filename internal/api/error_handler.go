package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/core/domain"
)

// errorResponse is the canonical error envelope for non-page errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends a view whose backend call came back 401 to the login surface
//     (the gateway has already purged the credential by then).
//   - Maps the remaining session-core errors to deterministic status codes
//     without touching session state.
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrInvalidCredential) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrServer):
		return http.StatusBadGateway, "backend error"
	case errors.Is(err, domain.ErrNetworkUnreachable):
		return http.StatusBadGateway, "backend unreachable"
	case errors.Is(err, domain.ErrLoginFailed):
		return http.StatusUnauthorized, "login failed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
