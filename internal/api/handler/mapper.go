package handler

import (
	"time"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// --- Request → Service input ---

func toProfileSetup(req profileSetupRequest) domain.ProfileSetup {
	return domain.ProfileSetup{
		Experience:    req.Experience,
		PricePerVisit: req.PricePerVisit,
		City:          req.City,
		Pincode:       req.Pincode,
		Address:       req.Address,
		About:         req.About,
	}
}

func toProviderEdit(req providerEditRequest) domain.ProviderEdit {
	return domain.ProviderEdit{
		Name:          req.Name,
		Phone:         req.Phone,
		City:          req.City,
		Experience:    req.Experience,
		PricePerVisit: req.PricePerVisit,
		About:         req.About,
		IsAvailable:   req.IsAvailable,
	}
}

func toCreateBookingInput(req createBookingRequest, idempotencyKey string) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		ProviderID:     req.ProviderID,
		Date:           req.Date,
		Time:           req.Time,
		Address:        req.Address,
		Pincode:        req.Pincode,
		IdempotencyKey: idempotencyKey,
	}
}

func toEventInput(req completionEventRequest) ports.CompletionEventInput {
	return ports.CompletionEventInput{
		BookingID:   req.BookingID,
		CompletedAt: req.CompletedAt,
		Source:      req.Source,
	}
}

// --- Service result → HTTP response ---

// destinationPath is the screen a client lands on after login.
func destinationPath(d domain.Destination) string {
	switch d {
	case domain.DestinationProfileSetup:
		return "/provider-setup"
	case domain.DestinationDashboard:
		return "/provider-dashboard"
	default:
		return "/providers"
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

func toUserSummaryResponse(s domain.UserSummary) userSummaryResponse {
	return userSummaryResponse{ID: s.ID, Name: s.Name, Phone: s.Phone}
}

func toProviderResponse(p *domain.Provider) providerResponse {
	return providerResponse{
		ID:                p.ID,
		Name:              p.Name,
		Email:             p.Email,
		Phone:             p.Phone,
		ServiceType:       p.ServiceType,
		Experience:        p.Experience,
		PricePerVisit:     p.PricePerVisit,
		City:              p.City,
		Pincode:           p.Pincode,
		Address:           p.Address,
		About:             p.About,
		IsProfileComplete: p.IsProfileComplete,
		IsAvailable:       p.IsAvailable,
		Rating:            p.Rating,
		TotalJobs:         p.TotalJobs,
		CreatedAt:         p.CreatedAt.UTC(),
	}
}

func toProviderResponses(list []*domain.Provider) []providerResponse {
	out := make([]providerResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProviderResponse(p))
	}
	return out
}

// toBookingResponse renders the calendar date in loc, the location the
// date was booked in, so the client sees the day it asked for.
func toBookingResponse(b *domain.Booking, loc *time.Location) bookingResponse {
	history := make([]statusEntryResponse, 0, len(b.StatusHistory))
	for _, h := range b.StatusHistory {
		history = append(history, statusEntryResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp.UTC(),
			Actor:     string(h.Actor),
			Notes:     h.Notes,
		})
	}

	return bookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		ProviderID:    b.ProviderID,
		ServiceType:   b.ServiceType,
		City:          b.City,
		Address:       b.Address,
		Pincode:       b.Pincode,
		Date:          b.Date.In(loc).Format("2006-01-02"),
		Time:          b.TimeSlot,
		Price:         b.Price,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.UTC(),
		StatusHistory: history,
		Links:         bookingLinks{Self: "/v1/bookings/" + b.ID},
	}
}

func toBookingResponses(list []*domain.Booking, loc *time.Location) []bookingResponse {
	out := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBookingResponse(b, loc))
	}
	return out
}

func toBookingWithUserResponses(list []domain.BookingWithUser, loc *time.Location) []bookingWithUserResponse {
	out := make([]bookingWithUserResponse, 0, len(list))
	for _, bw := range list {
		out = append(out, bookingWithUserResponse{
			bookingResponse: toBookingResponse(bw.Booking, loc),
			User:            toUserSummaryResponse(bw.User),
		})
	}
	return out
}

func toBookingDetailResponse(d *domain.BookingDetail, loc *time.Location) bookingDetailResponse {
	return bookingDetailResponse{
		Booking:  toBookingResponse(d.Booking, loc),
		User:     toUserSummaryResponse(d.User),
		Provider: toProviderResponse(d.Provider),
	}
}

func toDashboardResponse(v *ports.DashboardView, loc *time.Location) dashboardResponse {
	return dashboardResponse{
		Provider:        toProviderResponse(v.Provider),
		PendingBookings: toBookingWithUserResponses(v.PendingBookings, loc),
		TodayJobs:       toBookingWithUserResponses(v.TodayJobs, loc),
		JobsTodayCount:  v.Earnings.JobsToday,
		TodayEarnings:   v.Earnings.Today,
		WeekEarnings:    v.Earnings.Week,
		MonthEarnings:   v.Earnings.Month,
	}
}
