package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/api/metrics"
	"github.com/servicehub/marketplace/internal/api/middleware"
	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// AuthHandler serves signup, login and logout for both account kinds.
type AuthHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
	cookie   CookieConfig
}

func NewAuthHandler(accounts ports.AccountService, sessions ports.SessionService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, cookie: cookie}
}

// RegisterUser creates a customer account.
//
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User signup"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/users [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.accounts.RegisterUser(c.Request().Context(), ports.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(domain.RoleUser)).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

// RegisterProvider creates a provider account with an incomplete profile.
//
// @Summary      Register a service provider
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerProviderRequest  true  "Provider signup"
// @Success      201   {object}  providerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/providers [post]
func (h *AuthHandler) RegisterProvider(c echo.Context) error {
	var req registerProviderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.accounts.RegisterProvider(c.Request().Context(), ports.RegisterProviderInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(domain.RoleProvider)).Inc()
	return c.JSON(http.StatusCreated, toProviderResponse(p))
}

// Login authenticates against the account kind named by role and starts a
// new session, replacing any session the client already held.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and role (user or provider)"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	roleLabel := "invalid"
	if role, err := domain.ParseRole(req.Role); err == nil {
		roleLabel = string(role)
	}

	res, err := h.sessions.Login(c.Request().Context(), ports.LoginInput{
		PresentedToken: middleware.TokenFromRequest(c, h.cookie.Name),
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(roleLabel, loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(roleLabel, "success").Inc()

	h.cookie.issue(c, res.Session.Token)
	return c.JSON(http.StatusOK, loginResponse{
		Token:       res.Session.Token,
		Role:        string(res.Session.Principal.Role),
		AccountID:   res.Session.Principal.AccountID,
		Destination: string(res.Destination),
		Redirect:    destinationPath(res.Destination),
	})
}

// Logout destroys the current session. Calling it without a session is fine.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.TokenFromRequest(c, h.cookie.Name)); err != nil {
		return err
	}
	h.cookie.clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRole):
		return "invalid_role"
	case errors.Is(err, domain.ErrUnknownAccount):
		return "unknown_account"
	case errors.Is(err, domain.ErrBadCredential):
		return "bad_credential"
	default:
		return "error"
	}
}
