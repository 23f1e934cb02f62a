package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// DashboardService builds the provider dashboard from booking history.
type DashboardService struct {
	bookings  ports.BookingRepository
	users     ports.UserRepository
	providers ports.ProviderRepository
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

// NewDashboardService returns a DashboardService whose day, week and month
// boundaries are evaluated in loc.
func NewDashboardService(
	bookings ports.BookingRepository,
	users ports.UserRepository,
	providers ports.ProviderRepository,
	loc *time.Location,
	log zerolog.Logger,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		bookings:  bookings,
		users:     users,
		providers: providers,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

func (s *DashboardService) Dashboard(ctx context.Context, sess domain.Session) (*ports.DashboardView, error) {
	providerID, err := domain.RequireRole(sess, domain.RoleProvider)
	if err != nil {
		return nil, err
	}

	p, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if !p.IsProfileComplete {
		return nil, domain.ErrProfileIncomplete
	}

	all, err := s.bookings.ListByProvider(ctx, providerID,
		domain.StatusPending, domain.StatusAccepted, domain.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	var pending, earning []*domain.Booking
	for _, b := range all {
		switch {
		case b.Status == domain.StatusPending:
			pending = append(pending, b)
		case b.Status.Earning():
			earning = append(earning, b)
		}
	}

	now := s.now().In(s.loc)
	earnings := domain.ComputeEarnings(earning, now)
	today := domain.OnOrAfter(earning, domain.EarningWindows(now).Today)

	pendingView, err := attachUsers(ctx, s.users, pending)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	todayView, err := attachUsers(ctx, s.users, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	s.log.Debug().
		Str("provider_id", providerID).
		Int("pending", len(pendingView)).
		Int("jobs_today", earnings.JobsToday).
		Msg("dashboard computed")

	return &ports.DashboardView{
		Provider:        p,
		PendingBookings: pendingView,
		TodayJobs:       todayView,
		Earnings:        earnings,
	}, nil
}
