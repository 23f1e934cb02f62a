package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// DirectoryHandler serves provider discovery.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Search lists discoverable providers matching the query.
//
// @Summary      Search providers
// @Tags         directory
// @Produce      json
// @Param        service     query     string  false  "Service type (exact, case-insensitive)"
// @Param        city        query     string  false  "City (substring)"
// @Param        pincode     query     string  false  "Postal code (exact)"
// @Param        experience  query     int     false  "Minimum years of experience"
// @Param        price       query     number  false  "Maximum price per visit"
// @Success      200         {array}   providerResponse
// @Failure      400         {object}  errorResponse
// @Router       /v1/providers [get]
func (h *DirectoryHandler) Search(c echo.Context) error {
	filter := domain.ProviderFilter{
		ServiceType: c.QueryParam("service"),
		City:        c.QueryParam("city"),
		Pincode:     c.QueryParam("pincode"),
	}

	if v := c.QueryParam("experience"); v != "" {
		exp, err := strconv.Atoi(v)
		if err != nil || exp < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "experience must be a non-negative integer")
		}
		filter.MinExperience = &exp
	}
	if v := c.QueryParam("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "price must be a non-negative number")
		}
		filter.MaxPrice = &price
	}

	list, err := h.directory.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponses(list))
}

// Get returns one provider for the booking screen.
//
// @Summary      Get a provider
// @Tags         directory
// @Produce      json
// @Param        id   path      string  true  "Provider ID"
// @Success      200  {object}  providerResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/providers/{id} [get]
func (h *DirectoryHandler) Get(c echo.Context) error {
	p, err := h.directory.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProviderResponse(p))
}
