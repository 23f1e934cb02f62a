package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

const dateLayout = "2006-01-02"

// BookingService is the booking lifecycle engine. Every status change goes
// through domain.ValidateTransition before the conditional write.
type BookingService struct {
	bookings  ports.BookingRepository
	users     ports.UserRepository
	providers ports.ProviderRepository
	events    ports.BookingEventRepository
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

// NewBookingService returns a BookingService. Booking dates are interpreted
// as calendar dates in loc.
func NewBookingService(
	bookings ports.BookingRepository,
	users ports.UserRepository,
	providers ports.ProviderRepository,
	events ports.BookingEventRepository,
	loc *time.Location,
	log zerolog.Logger,
) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		bookings:  bookings,
		users:     users,
		providers: providers,
		events:    events,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// Create books a provider on behalf of the session's user. If an idempotency
// key is provided and already used by this user, the earlier booking is
// returned without side effects.
func (s *BookingService) Create(ctx context.Context, sess domain.Session, in ports.CreateBookingInput) (*ports.BookingResult, error) {
	userID, err := domain.RequireRole(sess, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	var idemKey string
	if in.IdempotencyKey != "" {
		idemKey = userID + ":" + in.IdempotencyKey
		existing, err := s.bookings.FindByIdempotencyKey(ctx, idemKey)
		switch {
		case err == nil && existing != nil:
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("booking_id", existing.ID).Msg("idempotent replay")
			return &ports.BookingResult{Booking: existing, AlreadyExisted: true}, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("create booking: idempotency lookup: %w", err)
		}
	}

	if in.ProviderID == "" || strings.TrimSpace(in.Time) == "" ||
		strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.Pincode) == "" {
		return nil, fmt.Errorf("create booking: %w", domain.ErrInvalidInput)
	}
	date, err := time.ParseInLocation(dateLayout, in.Date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("create booking: date %q: %w", in.Date, domain.ErrInvalidInput)
	}

	provider, err := s.providers.FindByID(ctx, in.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	now := s.now().UTC()
	b := &domain.Booking{
		UserID:         userID,
		ProviderID:     provider.ID,
		ServiceType:    provider.ServiceType,
		City:           provider.City,
		Address:        strings.TrimSpace(in.Address),
		Pincode:        strings.TrimSpace(in.Pincode),
		Date:           date,
		TimeSlot:       in.Time,
		Price:          provider.PricePerVisit,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
		IdempotencyKey: idemKey,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Actor: domain.ActorUser},
		},
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// A concurrent request with the same key may have won the insert.
		if idemKey != "" {
			if existing, findErr := s.bookings.FindByIdempotencyKey(ctx, idemKey); findErr == nil {
				return &ports.BookingResult{Booking: existing, AlreadyExisted: true}, nil
			}
		}
		s.log.Error().Err(err).Str("provider_id", provider.ID).Msg("failed to create booking")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.audit(ctx, b, "", domain.ActorUser, "", now)
	s.log.Info().Str("booking_id", b.ID).Str("user_id", userID).Str("provider_id", provider.ID).Msg("booking created")

	return &ports.BookingResult{Booking: b}, nil
}

func (s *BookingService) Accept(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error) {
	return s.decide(ctx, sess, id, domain.StatusAccepted)
}

func (s *BookingService) Reject(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error) {
	return s.decide(ctx, sess, id, domain.StatusRejected)
}

// decide applies a provider's accept or reject. Ownership and the transition
// are checked before anything is written; the write itself is conditional on
// the status read here, so a concurrent decision fails instead of
// overwriting.
func (s *BookingService) decide(ctx context.Context, sess domain.Session, id string, to domain.BookingStatus) (*domain.Booking, error) {
	providerID, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}

	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("decide booking: %w", err)
	}
	if b.ProviderID != providerID {
		return nil, fmt.Errorf("decide booking: %w", domain.ErrForbidden)
	}

	return s.transition(ctx, b, to, domain.ActorProvider, "", s.now().UTC())
}

// Complete marks an accepted booking completed and credits the provider with
// a finished job.
func (s *BookingService) Complete(ctx context.Context, id string, at time.Time, source string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}
	if at.IsZero() {
		at = s.now()
	}

	updated, err := s.transition(ctx, b, domain.StatusCompleted, domain.ActorSystem, source, at.UTC())
	if err != nil {
		return nil, err
	}

	if err := s.providers.IncrementTotalJobs(ctx, updated.ProviderID); err != nil {
		s.log.Error().Err(err).Str("provider_id", updated.ProviderID).Str("booking_id", id).Msg("failed to increment total jobs")
	}
	return updated, nil
}

func (s *BookingService) transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, actor domain.Actor, notes string, at time.Time) (*domain.Booking, error) {
	if err := domain.ValidateTransition(b.Status, to); err != nil {
		return nil, fmt.Errorf("set status %s: %w", to, err)
	}

	entry := domain.StatusHistoryEntry{Status: to, Timestamp: at, Actor: actor, Notes: notes}
	updated, err := s.bookings.UpdateStatus(ctx, b.ID, b.Status, to, entry)
	if err != nil {
		return nil, fmt.Errorf("set status %s: %w", to, err)
	}

	s.audit(ctx, updated, b.Status, actor, notes, at)
	s.log.Info().
		Str("booking_id", b.ID).
		Str("from", string(b.Status)).
		Str("to", string(to)).
		Str("actor", string(actor)).
		Msg("booking status changed")

	return updated, nil
}

// audit writes to booking_events. Failures are logged, never returned.
func (s *BookingService) audit(ctx context.Context, b *domain.Booking, from domain.BookingStatus, actor domain.Actor, source string, at time.Time) {
	ev := &domain.BookingEvent{
		BookingID:  b.ID,
		ProviderID: b.ProviderID,
		From:       from,
		To:         b.Status,
		Actor:      actor,
		Source:     source,
		Timestamp:  at,
	}
	if err := s.events.InsertEvent(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("booking_id", b.ID).Msg("failed to insert audit event")
	}
}

// Get resolves a booking with both parties populated.
func (s *BookingService) Get(ctx context.Context, id string) (*domain.BookingDetail, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return s.detail(ctx, b)
}

// GetForSession is Get restricted to the booking's own user or provider.
func (s *BookingService) GetForSession(ctx context.Context, sess domain.Session, id string) (*domain.BookingDetail, error) {
	if sess.Principal.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}

	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	party := (sess.Is(domain.RoleUser) && b.UserID == sess.Principal.AccountID) ||
		(sess.Is(domain.RoleProvider) && b.ProviderID == sess.Principal.AccountID)
	if !party {
		return nil, fmt.Errorf("get booking: %w", domain.ErrForbidden)
	}
	return s.detail(ctx, b)
}

func (s *BookingService) detail(ctx context.Context, b *domain.Booking) (*domain.BookingDetail, error) {
	u, err := s.users.FindByID(ctx, b.UserID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	p, err := s.providers.FindByID(ctx, b.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &domain.BookingDetail{Booking: b, User: u.Summary(), Provider: p}, nil
}

func (s *BookingService) ListForUser(ctx context.Context, sess domain.Session) ([]*domain.Booking, error) {
	userID, err := domain.RequireRole(sess, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	out, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return out, nil
}

// ListForProvider lists the provider's bookings, optionally restricted to one
// status, with the requesting users attached.
func (s *BookingService) ListForProvider(ctx context.Context, sess domain.Session, status string) ([]domain.BookingWithUser, error) {
	providerID, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}

	var statuses []domain.BookingStatus
	if status != "" {
		st, ok := domain.ParseBookingStatus(status)
		if !ok {
			return nil, fmt.Errorf("list provider bookings: status %q: %w", status, domain.ErrInvalidInput)
		}
		statuses = append(statuses, st)
	}

	list, err := s.bookings.ListByProvider(ctx, providerID, statuses...)
	if err != nil {
		return nil, fmt.Errorf("list provider bookings: %w", err)
	}
	return attachUsers(ctx, s.users, list)
}

// attachUsers pairs each booking with its user's summary. A user that can no
// longer be resolved yields an empty summary carrying just the id.
func attachUsers(ctx context.Context, users ports.UserRepository, bookings []*domain.Booking) ([]domain.BookingWithUser, error) {
	out := make([]domain.BookingWithUser, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	seen := make(map[string]struct{}, len(bookings))
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.UserID]; !ok {
			seen[b.UserID] = struct{}{}
			ids = append(ids, b.UserID)
		}
	}

	byID, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}

	for _, b := range bookings {
		summary := domain.UserSummary{ID: b.UserID}
		if u, ok := byID[b.UserID]; ok {
			summary = u.Summary()
		}
		out = append(out, domain.BookingWithUser{Booking: b, User: summary})
	}
	return out, nil
}
