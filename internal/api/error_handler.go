package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Redirect
// tells the client which screen to move to when the failure is recoverable
// by navigation (login, profile setup).
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

const (
	redirectLogin        = "/login"
	redirectProfileSetup = "/provider-setup"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs store outages and unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "redirect": "<path>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp := errorResponse{Error: fmt.Sprintf("%v", he.Message)}
		if he.Code == http.StatusUnauthorized {
			resp.Redirect = redirectLogin
		}
		return he.Code, resp
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: "please log in", Redirect: redirectLogin}
	case errors.Is(err, domain.ErrProfileIncomplete):
		return http.StatusConflict, errorResponse{Error: "complete your profile first", Redirect: redirectProfileSetup}
	case errors.Is(err, domain.ErrUnknownAccount):
		return http.StatusUnauthorized, errorResponse{Error: "email not registered"}
	case errors.Is(err, domain.ErrBadCredential):
		return http.StatusUnauthorized, errorResponse{Error: "wrong password"}
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, errorResponse{Error: "invalid role"}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, errorResponse{Error: "account already exists"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrProviderNotFound):
		return http.StatusNotFound, errorResponse{Error: "provider not found"}
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, errorResponse{Error: "booking not found"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrInvalidPostalCode):
		return http.StatusUnprocessableEntity, errorResponse{Error: "invalid pincode"}
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("store unavailable")
		return http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
