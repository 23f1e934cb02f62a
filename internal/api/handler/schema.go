package handler

import "time"

// --- Requests ---

type registerUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type registerProviderRequest struct {
	Name        string `json:"name"         validate:"required,max=100"`
	Email       string `json:"email"        validate:"required,email"`
	Phone       string `json:"phone"        validate:"required,max=20"`
	ServiceType string `json:"service_type" validate:"required,max=50"`
	Password    string `json:"password"     validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

type profileSetupRequest struct {
	Experience    *int     `json:"experience"      validate:"omitempty,gte=0"`
	PricePerVisit *float64 `json:"price_per_visit" validate:"omitempty,gte=0"`
	City          *string  `json:"city"            validate:"omitempty,max=100"`
	Pincode       *string  `json:"pincode"         validate:"omitempty,len=6,numeric"`
	Address       *string  `json:"address"         validate:"omitempty,max=300"`
	About         *string  `json:"about"           validate:"omitempty,max=1000"`
}

type providerEditRequest struct {
	Name          *string  `json:"name"            validate:"omitempty,min=1,max=100"`
	Phone         *string  `json:"phone"           validate:"omitempty,min=1,max=20"`
	City          *string  `json:"city"            validate:"omitempty,max=100"`
	Experience    *int     `json:"experience"      validate:"omitempty,gte=0"`
	PricePerVisit *float64 `json:"price_per_visit" validate:"omitempty,gte=0"`
	About         *string  `json:"about"           validate:"omitempty,max=1000"`
	IsAvailable   *bool    `json:"is_available"`
}

type createBookingRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
	Date       string `json:"date"        validate:"required,datetime=2006-01-02"`
	Time       string `json:"time"        validate:"required,max=50"`
	Address    string `json:"address"     validate:"required,max=300"`
	Pincode    string `json:"pincode"     validate:"required,len=6,numeric"`
}

type completionEventRequest struct {
	BookingID   string    `json:"booking_id"   validate:"required"`
	CompletedAt time.Time `json:"completed_at" validate:"required"`
	Source      string    `json:"source"       validate:"required"`
}

// --- Responses ---

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type userSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type providerResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	ServiceType       string    `json:"service_type"`
	Experience        int       `json:"experience"`
	PricePerVisit     float64   `json:"price_per_visit"`
	City              string    `json:"city"`
	Pincode           string    `json:"pincode"`
	Address           string    `json:"address,omitempty"`
	About             string    `json:"about"`
	IsProfileComplete bool      `json:"is_profile_complete"`
	IsAvailable       bool      `json:"is_available"`
	Rating            float64   `json:"rating"`
	TotalJobs         int       `json:"total_jobs"`
	CreatedAt         time.Time `json:"created_at"`
}

type statusEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Notes     string    `json:"notes,omitempty"`
}

type bookingLinks struct {
	Self string `json:"self"`
}

type bookingResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	ProviderID    string                `json:"provider_id"`
	ServiceType   string                `json:"service_type"`
	City          string                `json:"city"`
	Address       string                `json:"address"`
	Pincode       string                `json:"pincode"`
	Date          string                `json:"date"`
	Time          string                `json:"time"`
	Price         float64               `json:"price"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	StatusHistory []statusEntryResponse `json:"status_history"`
	Links         bookingLinks          `json:"_links"`
}

type bookingWithUserResponse struct {
	bookingResponse
	User userSummaryResponse `json:"user"`
}

type bookingDetailResponse struct {
	Booking  bookingResponse     `json:"booking"`
	User     userSummaryResponse `json:"user"`
	Provider providerResponse    `json:"provider"`
}

type dashboardResponse struct {
	Provider        providerResponse          `json:"provider"`
	PendingBookings []bookingWithUserResponse `json:"pending_bookings"`
	TodayJobs       []bookingWithUserResponse `json:"today_jobs"`
	JobsTodayCount  int                       `json:"jobs_today_count"`
	TodayEarnings   float64                   `json:"today_earnings"`
	WeekEarnings    float64                   `json:"week_earnings"`
	MonthEarnings   float64                   `json:"month_earnings"`
}

type loginResponse struct {
	Token       string `json:"token"`
	Role        string `json:"role"`
	AccountID   string `json:"account_id"`
	Destination string `json:"destination"`
	Redirect    string `json:"redirect"`
}

type locationResponse struct {
	Pincode string  `json:"pincode"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type messageResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
