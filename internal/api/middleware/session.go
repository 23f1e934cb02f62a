package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const sessionKey = "session"

// SessionResolver maps an opaque token to its session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (domain.Session, error)
}

// TokenFromRequest returns the session token carried by the request: the
// session cookie when present, otherwise a Bearer token.
func TokenFromRequest(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Session resolves the request's token and stores the session in the echo
// context. Requests without a valid token carry the anonymous session; only
// store faults abort the request.
func Session(resolver SessionResolver, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := resolver.Resolve(c.Request().Context(), TokenFromRequest(c, cookieName))
			if err != nil {
				return err
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session stored by Session, or the anonymous
// session when the middleware did not run.
func SessionFrom(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionKey).(domain.Session)
	return sess
}
