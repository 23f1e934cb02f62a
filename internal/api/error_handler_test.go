package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		code     int
		redirect string
	}{
		{"unauthenticated", fmt.Errorf("dashboard: %w", domain.ErrUnauthenticated), http.StatusUnauthorized, "/login"},
		{"profile incomplete", domain.ErrProfileIncomplete, http.StatusConflict, "/provider-setup"},
		{"unknown account", fmt.Errorf("login: %w", domain.ErrUnknownAccount), http.StatusUnauthorized, ""},
		{"bad credential", domain.ErrBadCredential, http.StatusUnauthorized, ""},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest, ""},
		{"duplicate", domain.ErrDuplicateAccount, http.StatusConflict, ""},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ""},
		{"booking not found", fmt.Errorf("get booking: %w", domain.ErrBookingNotFound), http.StatusNotFound, ""},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict, ""},
		{"invalid postal code", domain.ErrInvalidPostalCode, http.StatusUnprocessableEntity, ""},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable, ""},
		{"echo 401", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "/login"},
		{"echo 400", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error == "" {
				t.Errorf("error message must not be empty")
			}
			if resp.Redirect != tc.redirect {
				t.Errorf("expected redirect %q, got %q", tc.redirect, resp.Redirect)
			}
		})
	}
}

func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(fmt.Errorf("ping: %w: dial tcp 10.0.0.1", domain.ErrStoreUnavailable), c)

	var resp errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error != "service temporarily unavailable" {
		t.Errorf("store details leaked: %q", resp.Error)
	}
}
