package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// LoginInput carries a login attempt. PresentedToken is whatever session
// token the client already holds; it is discarded on success.
type LoginInput struct {
	PresentedToken string
	Email          string
	Password       string
	Role           string
}

type LoginResult struct {
	Session     domain.Session
	Destination domain.Destination
}

// SessionService is the session authority.
type SessionService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Resolve never fails for a bad token; it returns the anonymous session.
	// Only store faults are reported.
	Resolve(ctx context.Context, token string) (domain.Session, error)
	Logout(ctx context.Context, token string) error
}
