package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// UserRepository persists customer accounts.
type UserRepository interface {
	// Create stores u and fills in its ID. Returns domain.ErrDuplicateAccount
	// when the email or phone is already registered among users.
	Create(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a set of users in one round trip. Unknown ids are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}

// ProviderRepository persists service provider accounts.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.Provider) error
	FindByEmail(ctx context.Context, email string) (*domain.Provider, error)
	FindByID(ctx context.Context, id string) (*domain.Provider, error)

	// UpdateProfile applies the non-nil fields of setup and marks the
	// profile complete in the same write.
	UpdateProfile(ctx context.Context, id string, setup domain.ProfileSetup) (*domain.Provider, error)
	// Edit applies the non-nil fields of edit.
	Edit(ctx context.Context, id string, edit domain.ProviderEdit) (*domain.Provider, error)
	// ToggleAvailability flips is_available with a single server-side update
	// and returns the provider as stored afterwards.
	ToggleAvailability(ctx context.Context, id string) (*domain.Provider, error)
	IncrementTotalJobs(ctx context.Context, id string) error

	// Search returns complete, available providers matching filter.
	Search(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error)
}
