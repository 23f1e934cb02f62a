package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// AccountService implements signup and provider profile management.
type AccountService struct {
	users     ports.UserRepository
	providers ports.ProviderRepository
	cost      int
	log       zerolog.Logger
	now       func() time.Time
}

// NewAccountService returns an AccountService hashing with the given bcrypt
// cost. Out-of-range costs fall back to bcrypt.DefaultCost.
func NewAccountService(users ports.UserRepository, providers ports.ProviderRepository, bcryptCost int, log zerolog.Logger) *AccountService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		users:     users,
		providers: providers,
		cost:      bcryptCost,
		log:       log,
		now:       time.Now,
	}
}

func (s *AccountService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	acc, err := s.newAccount(in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	u := &domain.User{Account: acc}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.log.Info().Str("user_id", u.ID).Msg("user registered")
	return u, nil
}

func (s *AccountService) RegisterProvider(ctx context.Context, in ports.RegisterProviderInput) (*domain.Provider, error) {
	serviceType := strings.TrimSpace(in.ServiceType)
	if serviceType == "" {
		return nil, fmt.Errorf("register provider: service type required: %w", domain.ErrInvalidInput)
	}

	acc, err := s.newAccount(in.Name, in.Email, in.Phone, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register provider: %w", err)
	}

	p := &domain.Provider{
		Account:     acc,
		ServiceType: serviceType,
		IsAvailable: true,
	}
	if err := s.providers.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("register provider: %w", err)
	}

	s.log.Info().Str("provider_id", p.ID).Str("service_type", p.ServiceType).Msg("provider registered")
	return p, nil
}

func (s *AccountService) newAccount(name, email, phone, password string) (domain.Account, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	email = NormalizeEmail(email)
	if name == "" || email == "" || phone == "" || password == "" {
		return domain.Account{}, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.Account{}, fmt.Errorf("password too long: %w", domain.ErrInvalidInput)
		}
		return domain.Account{}, err
	}

	return domain.Account{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}, nil
}

func (s *AccountService) CurrentUser(ctx context.Context, sess domain.Session) (*domain.User, error) {
	id, err := domain.RequireRole(sess, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *AccountService) CurrentProvider(ctx context.Context, sess domain.Session) (*domain.Provider, error) {
	id, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}
	return s.providers.FindByID(ctx, id)
}

// SetupProfile completes the provider profile. Calling it again just applies
// the new values; the profile stays complete.
func (s *AccountService) SetupProfile(ctx context.Context, sess domain.Session, setup domain.ProfileSetup) (*domain.Provider, error) {
	id, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}
	if negativeInt(setup.Experience) || negativeFloat(setup.PricePerVisit) {
		return nil, fmt.Errorf("setup profile: %w", domain.ErrInvalidInput)
	}

	p, err := s.providers.UpdateProfile(ctx, id, setup)
	if err != nil {
		return nil, fmt.Errorf("setup profile: %w", err)
	}

	s.log.Info().Str("provider_id", id).Msg("provider profile completed")
	return p, nil
}

func (s *AccountService) EditProfile(ctx context.Context, sess domain.Session, edit domain.ProviderEdit) (*domain.Provider, error) {
	id, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}
	if negativeInt(edit.Experience) || negativeFloat(edit.PricePerVisit) {
		return nil, fmt.Errorf("edit profile: %w", domain.ErrInvalidInput)
	}
	if edit.Name != nil && strings.TrimSpace(*edit.Name) == "" {
		return nil, fmt.Errorf("edit profile: empty name: %w", domain.ErrInvalidInput)
	}

	p, err := s.providers.Edit(ctx, id, edit)
	if err != nil {
		return nil, fmt.Errorf("edit profile: %w", err)
	}
	return p, nil
}

func (s *AccountService) ToggleAvailability(ctx context.Context, sess domain.Session) (*domain.Provider, error) {
	id, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}

	p, err := s.providers.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle availability: %w", err)
	}

	s.log.Info().Str("provider_id", id).Bool("available", p.IsAvailable).Msg("availability toggled")
	return p, nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
func VerifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func negativeInt(v *int) bool { return v != nil && *v < 0 }
func negativeFloat(v *float64) bool { return v != nil && *v < 0 }
