package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// DashboardView is everything the provider dashboard screen shows.
type DashboardView struct {
	Provider        *domain.Provider
	PendingBookings []domain.BookingWithUser
	TodayJobs       []domain.BookingWithUser
	Earnings        domain.Earnings
}

type DashboardService interface {
	Dashboard(ctx context.Context, sess domain.Session) (*DashboardView, error)
}
