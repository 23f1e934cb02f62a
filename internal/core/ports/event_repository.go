package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// BookingEventRepository writes the booking_events audit trail.
type BookingEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.BookingEvent) error
}
