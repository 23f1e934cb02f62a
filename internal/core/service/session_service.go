package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

const tokenBytes = 32

// SessionService is the session authority: it authenticates logins, issues
// opaque tokens and resolves them back to a principal.
type SessionService struct {
	users     ports.UserRepository
	providers ports.ProviderRepository
	store     ports.SessionStore
	ttl       time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewSessionService(
	users ports.UserRepository,
	providers ports.ProviderRepository,
	store ports.SessionStore,
	ttl time.Duration,
	log zerolog.Logger,
) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{
		users:     users,
		providers: providers,
		store:     store,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}
}

// Login authenticates against the account kind named by the role claim. The
// claim is validated before any lookup. On success any token the client
// presented is destroyed and a fresh one is issued.
func (s *SessionService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	principal, dest, err := s.authenticate(ctx, role, NormalizeEmail(in.Email), in.Password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if in.PresentedToken != "" {
		if err := s.store.Delete(ctx, in.PresentedToken); err != nil {
			s.log.Warn().Err(err).Msg("failed to drop previous session")
		}
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("login: token: %w", err)
	}

	sess := domain.Session{Token: token, Principal: principal, CreatedAt: s.now().UTC()}
	if err := s.store.Save(ctx, sess, s.ttl); err != nil {
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	s.log.Info().Str("role", string(role)).Str("account_id", principal.AccountID).Msg("login")
	return &ports.LoginResult{Session: sess, Destination: dest}, nil
}

func (s *SessionService) authenticate(ctx context.Context, role domain.Role, email, password string) (domain.Principal, domain.Destination, error) {
	var (
		acc  domain.Account
		dest domain.Destination
	)

	switch role {
	case domain.RoleUser:
		u, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return domain.Principal{}, "", unknownAccount(err)
		}
		acc, dest = u.Account, domain.DestinationDiscovery
	case domain.RoleProvider:
		p, err := s.providers.FindByEmail(ctx, email)
		if err != nil {
			return domain.Principal{}, "", unknownAccount(err)
		}
		acc, dest = p.Account, domain.DestinationDashboard
		if !p.IsProfileComplete {
			dest = domain.DestinationProfileSetup
		}
	default:
		return domain.Principal{}, "", domain.ErrInvalidRole
	}

	if !VerifyPassword(acc.PasswordHash, password) {
		return domain.Principal{}, "", domain.ErrBadCredential
	}
	return domain.Principal{Role: role, AccountID: acc.ID}, dest, nil
}

func unknownAccount(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUnknownAccount
	}
	return err
}

// Resolve maps a token to its session. Empty, unknown and expired tokens
// resolve to the anonymous session.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, nil
	}

	sess, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, nil
		}
		return domain.Session{}, fmt.Errorf("resolve session: %w", err)
	}

	sess.Token = token
	return sess, nil
}

// Logout destroys the session. Logging out twice is not an error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
