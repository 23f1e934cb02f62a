package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	loc       *time.Location
}

func NewDashboardHandler(dashboard ports.DashboardService, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{dashboard: dashboard, loc: loc}
}

// Dashboard returns the provider's pending queue, today's jobs and earnings.
//
// @Summary      Provider dashboard
// @Tags         providers
// @Produce      json
// @Security     SessionAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse  "Profile setup required"
// @Router       /v1/provider/dashboard [get]
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	v, err := h.dashboard.Dashboard(c.Request().Context(), currentSession(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(v, h.loc))
}
