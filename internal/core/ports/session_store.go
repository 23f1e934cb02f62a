package ports

import (
	"context"
	"time"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// SessionStore holds sessions keyed by token until they expire.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session, ttl time.Duration) error
	// Get returns domain.ErrNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}
