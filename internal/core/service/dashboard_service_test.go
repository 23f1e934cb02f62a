package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// Thursday.
var dashNow = time.Date(2026, 10, 15, 16, 30, 0, 0, time.UTC)

func newDashboardFixture(t *testing.T) (*DashboardService, *stubBookingRepo, *stubProviderRepo) {
	t.Helper()
	bookings, users, providers := newStubBookingRepo(), newStubUserRepo(), newStubProviderRepo()
	users.byID["u1"] = &domain.User{Account: domain.Account{ID: "u1", Name: "Asha", Phone: "9800000001"}}
	providers.put(completeProvider("p1"))

	svc := NewDashboardService(bookings, users, providers, time.UTC, zerolog.Nop())
	svc.now = fixedClock(dashNow)
	return svc, bookings, providers
}

func seedBooking(r *stubBookingRepo, id, providerID string, status domain.BookingStatus, price float64, date time.Time) {
	r.put(&domain.Booking{
		ID: id, UserID: "u1", ProviderID: providerID,
		Status: status, Price: price, Date: date, CreatedAt: date,
	})
}

func TestDashboardService_Earnings(t *testing.T) {
	svc, bookings, _ := newDashboardFixture(t)
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	seedBooking(bookings, "b1", "p1", domain.StatusAccepted, 100, today)
	seedBooking(bookings, "b2", "p1", domain.StatusCompleted, 200, monday)
	seedBooking(bookings, "b3", "p1", domain.StatusPending, 50, today)
	seedBooking(bookings, "b4", "p1", domain.StatusRejected, 75, today)
	seedBooking(bookings, "b5", "p2", domain.StatusAccepted, 999, today)

	view, err := svc.Dashboard(context.Background(), providerSession("p1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := view.Earnings
	if e.Today != 100 || e.Week != 300 || e.Month != 300 || e.JobsToday != 1 {
		t.Errorf("unexpected earnings: %+v", e)
	}
	if len(view.PendingBookings) != 1 || view.PendingBookings[0].Booking.ID != "b3" {
		t.Fatalf("unexpected pending list: %+v", view.PendingBookings)
	}
	if view.PendingBookings[0].User.Name != "Asha" || view.PendingBookings[0].User.Phone != "9800000001" {
		t.Errorf("pending booking missing user summary: %+v", view.PendingBookings[0].User)
	}
	if len(view.TodayJobs) != 1 || view.TodayJobs[0].Booking.ID != "b1" {
		t.Errorf("unexpected today jobs: %+v", view.TodayJobs)
	}
	if view.Provider.ID != "p1" {
		t.Errorf("provider not returned: %+v", view.Provider)
	}
}

func TestDashboardService_UsesConfiguredLocation(t *testing.T) {
	svc, bookings, _ := newDashboardFixture(t)
	ist := time.FixedZone("IST", 5*3600+1800)
	svc.loc = ist
	// 15 Oct 20:00 UTC is already 16 Oct in IST.
	svc.now = fixedClock(time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC))

	seedBooking(bookings, "b1", "p1", domain.StatusAccepted, 100, time.Date(2026, 10, 15, 0, 0, 0, 0, ist))
	seedBooking(bookings, "b2", "p1", domain.StatusAccepted, 40, time.Date(2026, 10, 16, 0, 0, 0, 0, ist))

	view, err := svc.Dashboard(context.Background(), providerSession("p1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Earnings.Today != 40 || view.Earnings.Week != 140 {
		t.Errorf("unexpected earnings in IST: %+v", view.Earnings)
	}
}

func TestDashboardService_Gating(t *testing.T) {
	svc, _, providers := newDashboardFixture(t)
	ctx := context.Background()

	if _, err := svc.Dashboard(ctx, userSession("u1")); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("user session: expected ErrUnauthenticated, got %v", err)
	}

	incomplete := completeProvider("p9")
	incomplete.IsProfileComplete = false
	providers.put(incomplete)
	if _, err := svc.Dashboard(ctx, providerSession("p9")); !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Errorf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestDashboardService_NoBookings(t *testing.T) {
	svc, _, _ := newDashboardFixture(t)

	view, err := svc.Dashboard(context.Background(), providerSession("p1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.PendingBookings == nil || view.TodayJobs == nil {
		t.Error("lists must be empty, not nil")
	}
	if view.Earnings != (domain.Earnings{}) {
		t.Errorf("expected zero earnings, got %+v", view.Earnings)
	}
}
