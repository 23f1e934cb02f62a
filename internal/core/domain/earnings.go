package domain

import "time"

// Windows holds the lower bounds of the dashboard earning windows. All bounds
// are inclusive and share the location of the evaluation time.
type Windows struct {
	Today time.Time
	Week  time.Time
	Month time.Time
}

// EarningWindows computes the window starts for now. Weeks start on Monday;
// on a Sunday the week started six days earlier.
func EarningWindows(now time.Time) Windows {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}

	return Windows{
		Today: today,
		Week:  today.AddDate(0, 0, 1-weekday),
		Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

// Earnings is the aggregated revenue of a provider.
type Earnings struct {
	Today     float64 `json:"today_earnings"`
	Week      float64 `json:"week_earnings"`
	Month     float64 `json:"month_earnings"`
	JobsToday int     `json:"jobs_today_count"`
}

// ComputeEarnings sums booking prices into the windows derived from now.
// Bookings that are not Accepted or Completed are ignored; a booking without
// a price contributes zero. Windows have no upper bound, so accepted bookings
// dated later than now count toward every window they start after.
func ComputeEarnings(bookings []*Booking, now time.Time) Earnings {
	w := EarningWindows(now)

	var e Earnings
	for _, b := range bookings {
		if b == nil || !b.Status.Earning() {
			continue
		}
		if !b.Date.Before(w.Today) {
			e.Today += b.Price
			e.JobsToday++
		}
		if !b.Date.Before(w.Week) {
			e.Week += b.Price
		}
		if !b.Date.Before(w.Month) {
			e.Month += b.Price
		}
	}
	return e
}

// OnOrAfter returns the bookings dated at or after start, preserving order.
func OnOrAfter(bookings []*Booking, start time.Time) []*Booking {
	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.Date.Before(start) {
			out = append(out, b)
		}
	}
	return out
}
