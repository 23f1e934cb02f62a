package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// RequireRole rejects requests whose session is not authenticated in role.
// A session of the other role is treated as unauthenticated, so the client
// is sent back to login rather than refused outright.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := domain.RequireRole(SessionFrom(c), role); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// RequireAuthenticated rejects anonymous sessions regardless of role.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c).Principal.Anonymous() {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
