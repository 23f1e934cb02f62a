package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/servicehub/marketplace/internal/api/handler"
	"github.com/servicehub/marketplace/internal/api/middleware"
	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// Deps is everything the HTTP layer needs from the rest of the process.
type Deps struct {
	Accounts   ports.AccountService
	Sessions   ports.SessionService
	Bookings   ports.BookingService
	Dashboard  ports.DashboardService
	Directory  ports.DirectoryService
	Geocode    ports.GeocodeService
	Dispatcher handler.EventDispatcher
	Health     []handler.Dependency

	Location          *time.Location
	Cookie            handler.CookieConfig
	LoginRateLimit    int
	IntegrationSecret string

	// MetricsRegisterer receives the HTTP metrics; nil means the default registry.
	MetricsRegisterer prometheus.Registerer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "servicehub_http",
		Registerer: d.MetricsRegisterer,
	}))

	// --- Handlers ---
	authH := handler.NewAuthHandler(d.Accounts, d.Sessions, d.Cookie)
	accountH := handler.NewAccountHandler(d.Accounts)
	bookingH := handler.NewBookingHandler(d.Bookings, d.Location)
	dashboardH := handler.NewDashboardHandler(d.Dashboard, d.Location)
	directoryH := handler.NewDirectoryHandler(d.Directory)
	geocodeH := handler.NewGeocodeHandler(d.Geocode)
	eventH := handler.NewEventHandler(d.Dispatcher)
	healthH := handler.NewHealthHandler(d.Health...)

	session := middleware.Session(d.Sessions, d.Cookie.Name)
	asUser := middleware.RequireRole(domain.RoleUser)
	asProvider := middleware.RequireRole(domain.RoleProvider)

	v1 := e.Group("/v1")

	// --- Auth ---
	auth := v1.Group("/auth")
	auth.POST("/users", authH.RegisterUser)
	auth.POST("/providers", authH.RegisterProvider)
	auth.POST("/login", authH.Login, loginLimiter(d.LoginRateLimit))
	auth.POST("/logout", authH.Logout)

	// --- Discovery (public) ---
	v1.GET("/providers", directoryH.Search)
	v1.GET("/providers/:id", directoryH.Get)
	v1.GET("/pincodes/:pincode/location", geocodeH.Locate)

	// --- User ---
	me := v1.Group("/me", session, asUser)
	me.GET("", accountH.Me)
	me.GET("/bookings", bookingH.ListMine)

	// --- Bookings ---
	bookings := v1.Group("/bookings", session)
	bookings.POST("", bookingH.Create, asUser)
	bookings.GET("/:id", bookingH.Get, middleware.RequireAuthenticated())
	bookings.POST("/:id/accept", bookingH.Accept, asProvider)
	bookings.POST("/:id/reject", bookingH.Reject, asProvider)

	// --- Provider ---
	provider := v1.Group("/provider", session, asProvider)
	provider.GET("/profile", accountH.ProviderProfile)
	provider.PUT("/profile", accountH.EditProfile)
	provider.PUT("/profile/setup", accountH.SetupProfile)
	provider.POST("/availability/toggle", accountH.ToggleAvailability)
	provider.GET("/dashboard", dashboardH.Dashboard)
	provider.GET("/bookings", bookingH.ListForProvider)

	// --- Completion events (integration token) ---
	events := v1.Group("/events", middleware.IntegrationAuth(d.IntegrationSecret))
	events.POST("/completions", eventH.Receive)
	events.POST("/completions/batch", eventH.ReceiveBatch)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthH.Liveness)
	e.GET("/health/ready", healthH.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// loginLimiter throttles login attempts per client IP. perMinute <= 0
// disables throttling.
func loginLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
		},
	})
}

// requestLogger writes one zerolog entry per request. Errors are handed to
// the HTTP error handler first so the logged status is the one sent.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			} else if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
