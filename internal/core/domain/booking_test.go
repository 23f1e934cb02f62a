package domain

import (
	"errors"
	"testing"
)

func TestBookingStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusCompleted, true},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusRejected, StatusAccepted, false},
		{StatusCompleted, StatusAccepted, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: want %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(StatusPending, StatusAccepted); err != nil {
		t.Fatalf("expected valid transition, got %v", err)
	}

	err := ValidateTransition(StatusRejected, StatusAccepted)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	for _, s := range []BookingStatus{StatusRejected, StatusCompleted} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{StatusPending, StatusAccepted} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	if s, ok := ParseBookingStatus("Accepted"); !ok || s != StatusAccepted {
		t.Errorf("expected Accepted, got %q %v", s, ok)
	}
	if _, ok := ParseBookingStatus("accepted"); ok {
		t.Error("status names are case sensitive")
	}
}

func TestNotFoundErrorsWrap(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrProviderNotFound, ErrBookingNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("%v should match ErrNotFound", err)
		}
	}
}
