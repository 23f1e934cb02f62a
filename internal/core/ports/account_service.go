package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

type RegisterUserInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type RegisterProviderInput struct {
	Name        string
	Email       string
	Phone       string
	ServiceType string
	Password    string
}

// AccountService covers signup and the provider profile operations.
type AccountService interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	RegisterProvider(ctx context.Context, in RegisterProviderInput) (*domain.Provider, error)

	CurrentUser(ctx context.Context, sess domain.Session) (*domain.User, error)
	CurrentProvider(ctx context.Context, sess domain.Session) (*domain.Provider, error)

	SetupProfile(ctx context.Context, sess domain.Session, setup domain.ProfileSetup) (*domain.Provider, error)
	EditProfile(ctx context.Context, sess domain.Session, edit domain.ProviderEdit) (*domain.Provider, error)
	ToggleAvailability(ctx context.Context, sess domain.Session) (*domain.Provider, error)
}
