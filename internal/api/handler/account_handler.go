package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/ports"
)

// AccountHandler serves the signed-in account's own profile.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Me returns the signed-in user.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	u, err := h.accounts.CurrentUser(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// ProviderProfile returns the signed-in provider.
//
// @Summary      Current provider profile
// @Tags         providers
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  providerResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/provider/profile [get]
func (h *AccountHandler) ProviderProfile(c echo.Context) error {
	p, err := h.accounts.CurrentProvider(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}

// SetupProfile fills in the provider's professional details and makes the
// provider discoverable.
//
// @Summary      Complete provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      profileSetupRequest  true  "Profile details"
// @Success      200   {object}  providerResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/provider/profile/setup [put]
func (h *AccountHandler) SetupProfile(c echo.Context) error {
	var req profileSetupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.accounts.SetupProfile(c.Request().Context(), currentSession(c), toProfileSetup(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}

// EditProfile applies a partial edit to the provider's profile.
//
// @Summary      Edit provider profile
// @Tags         providers
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      providerEditRequest  true  "Fields to change"
// @Success      200   {object}  providerResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/provider/profile [put]
func (h *AccountHandler) EditProfile(c echo.Context) error {
	var req providerEditRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.accounts.EditProfile(c.Request().Context(), currentSession(c), toProviderEdit(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}

// ToggleAvailability flips whether the provider accepts new bookings.
//
// @Summary      Toggle availability
// @Tags         providers
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  providerResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/provider/availability/toggle [post]
func (h *AccountHandler) ToggleAvailability(c echo.Context) error {
	p, err := h.accounts.ToggleAvailability(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}
