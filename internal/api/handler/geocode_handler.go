package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/ports"
)

type GeocodeHandler struct {
	geocode ports.GeocodeService
}

func NewGeocodeHandler(geocode ports.GeocodeService) *GeocodeHandler {
	return &GeocodeHandler{geocode: geocode}
}

// Locate resolves an Indian pincode to coordinates.
//
// @Summary      Locate a pincode
// @Tags         geocoding
// @Produce      json
// @Param        pincode  path      string  true  "Six-digit postal code"
// @Success      200      {object}  locationResponse
// @Failure      422      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/pincodes/{pincode}/location [get]
func (h *GeocodeHandler) Locate(c echo.Context) error {
	pincode := c.Param("pincode")
	coords, err := h.geocode.Locate(c.Request().Context(), pincode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, locationResponse{Pincode: pincode, Lat: coords.Lat, Lng: coords.Lng})
}
