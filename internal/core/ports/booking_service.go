package ports

import (
	"context"
	"time"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// CreateBookingInput is what a user submits from the booking screen.
// Date is a calendar date in 2006-01-02 form.
type CreateBookingInput struct {
	ProviderID     string
	Date           string
	Time           string
	Address        string
	Pincode        string
	IdempotencyKey string
}

// BookingResult is returned by Create.
type BookingResult struct {
	Booking *domain.Booking
	// AlreadyExisted is true when the Idempotency-Key matched an existing booking.
	AlreadyExisted bool
}

// BookingService is the booking lifecycle engine.
type BookingService interface {
	Create(ctx context.Context, sess domain.Session, in CreateBookingInput) (*BookingResult, error)
	Accept(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error)
	Reject(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error)
	// Complete applies an externally reported completion.
	Complete(ctx context.Context, id string, at time.Time, source string) (*domain.Booking, error)

	Get(ctx context.Context, id string) (*domain.BookingDetail, error)
	GetForSession(ctx context.Context, sess domain.Session, id string) (*domain.BookingDetail, error)
	ListForUser(ctx context.Context, sess domain.Session) ([]*domain.Booking, error)
	ListForProvider(ctx context.Context, sess domain.Session, status string) ([]domain.BookingWithUser, error)
}
