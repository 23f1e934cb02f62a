package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, bookingID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, bookingID, status string, ts time.Time) error
}

// BookingCompleter applies a completion to a booking.
type BookingCompleter interface {
	Complete(ctx context.Context, id string, at time.Time, source string) (*domain.Booking, error)
}

type eventService struct {
	bookings BookingCompleter
	dedup    DedupChecker
	log      zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(bookings BookingCompleter, dedup DedupChecker, log zerolog.Logger) ports.EventService {
	return &eventService{
		bookings: bookings,
		dedup:    dedup,
		log:      log,
	}
}

// Process deduplicates and applies a single completion event.
func (s *eventService) Process(ctx context.Context, in ports.CompletionEventInput) error {
	status := string(domain.StatusCompleted)

	isDup, err := s.dedup.IsDuplicate(ctx, in.BookingID, status, in.CompletedAt)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", in.BookingID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("booking_id", in.BookingID).Msg("duplicate event skipped")
		return nil
	}

	if _, err := s.bookings.Complete(ctx, in.BookingID, in.CompletedAt, in.Source); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	if err := s.dedup.Mark(ctx, in.BookingID, status, in.CompletedAt); err != nil {
		s.log.Warn().Err(err).Str("booking_id", in.BookingID).Msg("failed to set dedup key")
	}

	s.log.Info().
		Str("booking_id", in.BookingID).
		Str("source", in.Source).
		Msg("completion event processed")

	return nil
}
