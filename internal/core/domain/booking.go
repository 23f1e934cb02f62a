package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusAccepted  BookingStatus = "Accepted"
	StatusRejected  BookingStatus = "Rejected"
	StatusCompleted BookingStatus = "Completed"
)

// validTransitions defines the allowed state machine transitions.
// Rejected and Completed are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

// ParseBookingStatus validates s against the known statuses.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Earning reports whether a booking in this status counts toward revenue.
// Revenue is recognised on acceptance, not completion.
func (s BookingStatus) Earning() bool {
	return s == StatusAccepted || s == StatusCompleted
}

// ValidateTransition is the single guard every status change goes through.
func ValidateTransition(from, to BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w (from %s to %s)", ErrInvalidTransition, from, to)
	}
	return nil
}

// Actor names who applied a status change.
type Actor string

const (
	ActorUser     Actor = "user"
	ActorProvider Actor = "provider"
	ActorSystem   Actor = "system"
)

// StatusHistoryEntry records a single status transition on a booking.
type StatusHistoryEntry struct {
	Status    BookingStatus `json:"status" bson:"status"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Actor     Actor         `json:"actor" bson:"actor"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Booking is a single service request from a user to a provider.
//
// ServiceType, City and Price are copied from the provider when the booking is
// created and never refreshed, so later profile edits do not rewrite history.
type Booking struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	UserID         string               `json:"user_id" bson:"user_id"`
	ProviderID     string               `json:"provider_id" bson:"provider_id"`
	ServiceType    string               `json:"service_type" bson:"service_type"`
	City           string               `json:"city" bson:"city"`
	Address        string               `json:"address" bson:"address"`
	Pincode        string               `json:"pincode" bson:"pincode"`
	Date           time.Time            `json:"date" bson:"date"`
	TimeSlot       string               `json:"time" bson:"time"`
	Price          float64              `json:"price" bson:"price"`
	Status         BookingStatus        `json:"status" bson:"status"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
	IdempotencyKey string               `json:"-" bson:"idempotency_key,omitempty"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// BookingDetail is a booking with both parties resolved for display.
type BookingDetail struct {
	Booking  *Booking
	User     UserSummary
	Provider *Provider
}

// BookingWithUser pairs a booking with the requesting user's summary.
type BookingWithUser struct {
	Booking *Booking
	User    UserSummary
}
