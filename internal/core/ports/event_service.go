package ports

import (
	"context"
	"time"
)

// CompletionEventInput is the DTO passed from the transport layer to EventService.
type CompletionEventInput struct {
	BookingID   string
	CompletedAt time.Time
	Source      string
}

// EventService processes completion events reported by external systems.
type EventService interface {
	Process(ctx context.Context, event CompletionEventInput) error
}
