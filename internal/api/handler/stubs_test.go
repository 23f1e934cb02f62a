package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// newTestContext builds an echo context with the validator registered and,
// when sess is non-nil, the session the Session middleware would have set.
func newTestContext(method, target, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set("session", *sess)
	}
	return c, rec
}

func userSess(id string) *domain.Session {
	return &domain.Session{Token: "tok-" + id, Principal: domain.Principal{Role: domain.RoleUser, AccountID: id}}
}

func providerSess(id string) *domain.Session {
	return &domain.Session{Token: "tok-" + id, Principal: domain.Principal{Role: domain.RoleProvider, AccountID: id}}
}

// --- account service ---

type stubAccountService struct {
	registerUserFn     func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	registerProviderFn func(ctx context.Context, in ports.RegisterProviderInput) (*domain.Provider, error)
	currentUserFn      func(ctx context.Context, sess domain.Session) (*domain.User, error)
	currentProviderFn  func(ctx context.Context, sess domain.Session) (*domain.Provider, error)
	setupFn            func(ctx context.Context, sess domain.Session, s domain.ProfileSetup) (*domain.Provider, error)
	editFn             func(ctx context.Context, sess domain.Session, e domain.ProviderEdit) (*domain.Provider, error)
	toggleFn           func(ctx context.Context, sess domain.Session) (*domain.Provider, error)
}

func (s *stubAccountService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerUserFn(ctx, in)
}

func (s *stubAccountService) RegisterProvider(ctx context.Context, in ports.RegisterProviderInput) (*domain.Provider, error) {
	return s.registerProviderFn(ctx, in)
}

func (s *stubAccountService) CurrentUser(ctx context.Context, sess domain.Session) (*domain.User, error) {
	return s.currentUserFn(ctx, sess)
}

func (s *stubAccountService) CurrentProvider(ctx context.Context, sess domain.Session) (*domain.Provider, error) {
	return s.currentProviderFn(ctx, sess)
}

func (s *stubAccountService) SetupProfile(ctx context.Context, sess domain.Session, setup domain.ProfileSetup) (*domain.Provider, error) {
	return s.setupFn(ctx, sess, setup)
}

func (s *stubAccountService) EditProfile(ctx context.Context, sess domain.Session, edit domain.ProviderEdit) (*domain.Provider, error) {
	return s.editFn(ctx, sess, edit)
}

func (s *stubAccountService) ToggleAvailability(ctx context.Context, sess domain.Session) (*domain.Provider, error) {
	return s.toggleFn(ctx, sess)
}

// --- session service ---

type stubSessionService struct {
	loginFn  func(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, token string) error
}

func (s *stubSessionService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	return s.loginFn(ctx, in)
}

func (s *stubSessionService) Resolve(context.Context, string) (domain.Session, error) {
	return domain.Session{}, nil
}

func (s *stubSessionService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

// --- booking service ---

type stubBookingService struct {
	createFn          func(ctx context.Context, sess domain.Session, in ports.CreateBookingInput) (*ports.BookingResult, error)
	acceptFn          func(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error)
	rejectFn          func(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error)
	getForSessionFn   func(ctx context.Context, sess domain.Session, id string) (*domain.BookingDetail, error)
	listForUserFn     func(ctx context.Context, sess domain.Session) ([]*domain.Booking, error)
	listForProviderFn func(ctx context.Context, sess domain.Session, status string) ([]domain.BookingWithUser, error)
}

func (s *stubBookingService) Create(ctx context.Context, sess domain.Session, in ports.CreateBookingInput) (*ports.BookingResult, error) {
	return s.createFn(ctx, sess, in)
}

func (s *stubBookingService) Accept(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error) {
	return s.acceptFn(ctx, sess, id)
}

func (s *stubBookingService) Reject(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error) {
	return s.rejectFn(ctx, sess, id)
}

func (s *stubBookingService) Complete(context.Context, string, time.Time, string) (*domain.Booking, error) {
	panic("not used by handlers")
}

func (s *stubBookingService) Get(context.Context, string) (*domain.BookingDetail, error) {
	panic("not used by handlers")
}

func (s *stubBookingService) GetForSession(ctx context.Context, sess domain.Session, id string) (*domain.BookingDetail, error) {
	return s.getForSessionFn(ctx, sess, id)
}

func (s *stubBookingService) ListForUser(ctx context.Context, sess domain.Session) ([]*domain.Booking, error) {
	return s.listForUserFn(ctx, sess)
}

func (s *stubBookingService) ListForProvider(ctx context.Context, sess domain.Session, status string) ([]domain.BookingWithUser, error) {
	return s.listForProviderFn(ctx, sess, status)
}

// --- dashboard, directory, geocode ---

type stubDashboardService struct {
	fn func(ctx context.Context, sess domain.Session) (*ports.DashboardView, error)
}

func (s *stubDashboardService) Dashboard(ctx context.Context, sess domain.Session) (*ports.DashboardView, error) {
	return s.fn(ctx, sess)
}

type stubDirectoryService struct {
	searchFn func(ctx context.Context, f domain.ProviderFilter) ([]*domain.Provider, error)
	getFn    func(ctx context.Context, id string) (*domain.Provider, error)
}

func (s *stubDirectoryService) Search(ctx context.Context, f domain.ProviderFilter) ([]*domain.Provider, error) {
	return s.searchFn(ctx, f)
}

func (s *stubDirectoryService) Get(ctx context.Context, id string) (*domain.Provider, error) {
	return s.getFn(ctx, id)
}

type stubGeocodeService struct {
	fn func(ctx context.Context, pincode string) (domain.Coordinates, error)
}

func (s *stubGeocodeService) Locate(ctx context.Context, pincode string) (domain.Coordinates, error) {
	return s.fn(ctx, pincode)
}

// --- dispatcher ---

type stubDispatcher struct {
	mu     sync.Mutex
	events []ports.CompletionEventInput
}

func (d *stubDispatcher) Enqueue(e ports.CompletionEventInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

func (d *stubDispatcher) EnqueueBatch(events []ports.CompletionEventInput) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}
