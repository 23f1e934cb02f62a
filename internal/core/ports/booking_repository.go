package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// BookingRepository persists bookings. Lists are ordered by created_at,
// newest first.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	// ListByProvider returns every booking of the provider when statuses is
	// empty, otherwise only those in one of statuses.
	ListByProvider(ctx context.Context, providerID string, statuses ...domain.BookingStatus) ([]*domain.Booking, error)

	// UpdateStatus moves a booking from one status to another in a single
	// conditional write and appends entry to its history. When the booking is
	// no longer in status from, nothing is written and
	// domain.ErrInvalidTransition is returned.
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus, entry domain.StatusHistoryEntry) (*domain.Booking, error)
}
