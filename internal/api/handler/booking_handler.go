package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/api/metrics"
	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// BookingHandler serves booking creation, provider decisions and booking lists.
type BookingHandler struct {
	bookings ports.BookingService
	loc      *time.Location
}

// NewBookingHandler returns a BookingHandler. loc is the location booking
// dates are expressed in.
func NewBookingHandler(bookings ports.BookingService, loc *time.Location) *BookingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingHandler{bookings: bookings, loc: loc}
}

// Create books a provider for the signed-in user.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        Idempotency-Key  header    string                false  "Replays the earlier booking when reused"
// @Param        body             body      createBookingRequest  true   "Booking request"
// @Success      201              {object}  bookingResponse
// @Success      200              {object}  bookingResponse  "Idempotent replay"
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	res, err := h.bookings.Create(c.Request().Context(), currentSession(c), toCreateBookingInput(req, idempotencyKey))
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		return c.JSON(http.StatusOK, toBookingResponse(res.Booking, h.loc))
	}
	metrics.BookingsCreatedTotal.WithLabelValues(res.Booking.ServiceType).Inc()
	return c.JSON(http.StatusCreated, toBookingResponse(res.Booking, h.loc))
}

// Get returns a booking with both parties, to either party.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  bookingDetailResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	d, err := h.bookings.GetForSession(c.Request().Context(), currentSession(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingDetailResponse(d, h.loc))
}

// Accept moves a pending booking to Accepted.
//
// @Summary      Accept a booking
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c echo.Context) error {
	return h.decide(c, h.bookings.Accept, domain.StatusAccepted)
}

// Reject moves a pending booking to Rejected.
//
// @Summary      Reject a booking
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  bookingResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c echo.Context) error {
	return h.decide(c, h.bookings.Reject, domain.StatusRejected)
}

type decision func(ctx context.Context, sess domain.Session, id string) (*domain.Booking, error)

func (h *BookingHandler) decide(c echo.Context, apply decision, to domain.BookingStatus) error {
	b, err := apply(c.Request().Context(), currentSession(c), c.Param("id"))
	if err != nil {
		metrics.BookingTransitionErrorsTotal.WithLabelValues(transitionErrorReason(err)).Inc()
		return err
	}

	metrics.BookingTransitionsTotal.WithLabelValues(string(to), string(domain.ActorProvider)).Inc()
	return c.JSON(http.StatusOK, toBookingResponse(b, h.loc))
}

// ListMine returns the signed-in user's bookings, newest first.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Success      200  {array}   bookingResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	list, err := h.bookings.ListForUser(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponses(list, h.loc))
}

// ListForProvider returns the signed-in provider's bookings, optionally
// filtered by status.
//
// @Summary      List provider bookings
// @Tags         bookings
// @Produce      json
// @Security     SessionAuth
// @Param        status  query     string  false  "Pending, Accepted, Rejected or Completed"
// @Success      200     {array}   bookingWithUserResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/provider/bookings [get]
func (h *BookingHandler) ListForProvider(c echo.Context) error {
	list, err := h.bookings.ListForProvider(c.Request().Context(), currentSession(c), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingWithUserResponses(list, h.loc))
}

func transitionErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "error"
	}
}
