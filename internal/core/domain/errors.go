package domain

import (
	"errors"
	"fmt"
)

// Business outcomes. Every one of these is an expected result the caller must
// be able to tell apart; only ErrStoreUnavailable is treated as a fault.
var (
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrUnknownAccount    = errors.New("email not registered")
	ErrBadCredential     = errors.New("wrong password")
	ErrInvalidRole       = errors.New("invalid role")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrForbidden         = errors.New("access forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidPostalCode = errors.New("invalid postal code")
	ErrProfileIncomplete = errors.New("provider profile incomplete")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidInput      = errors.New("invalid input")
)

// Kind-specific not-found errors; all of them match ErrNotFound via errors.Is.
var (
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrProviderNotFound = fmt.Errorf("provider %w", ErrNotFound)
	ErrBookingNotFound  = fmt.Errorf("booking %w", ErrNotFound)
)
