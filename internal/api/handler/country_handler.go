package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// CountryHandler handles HTTP requests for country operations.
type CountryHandler struct {
	service ports.CountryService
}

func NewCountryHandler(service ports.CountryService) *CountryHandler {
	return &CountryHandler{service: service}
}

type createCountryRequest struct {
	Code string `json:"code" validate:"required,min=1,max=3"`
	Name string `json:"name" validate:"required"`
}

type updateCountryRequest struct {
	Code *string `json:"code" validate:"omitempty,min=1,max=3"`
	Name *string `json:"name"`
}

// List handles GET /api/countries.
//
// @Summary      List all countries
// @Tags         countries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Country
// @Failure      401  {object}  map[string]string
// @Router       /api/countries [get]
func (h *CountryHandler) List(c echo.Context) error {
	countries, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countries)
}

// Get handles GET /api/countries/:code.
//
// @Summary      Get a country by code
// @Tags         countries
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "ISO country code"
// @Success      200   {object}  domain.Country
// @Failure      404   {object}  map[string]string
// @Router       /api/countries/{code} [get]
func (h *CountryHandler) Get(c echo.Context) error {
	country, err := h.service.FindByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, country)
}

// Create handles POST /api/countries.
//
// @Summary      Create a country
// @Tags         countries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCountryRequest  true  "Country"
// @Success      201   {object}  domain.Country
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/countries [post]
func (h *CountryHandler) Create(c echo.Context) error {
	var req createCountryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	country, err := h.service.Create(c.Request().Context(), domain.Country{Code: req.Code, Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, country)
}

// Update handles PUT /api/countries/:code. Absent fields keep their stored
// values.
//
// @Summary      Update a country
// @Tags         countries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string                true  "ISO country code"
// @Param        body  body      updateCountryRequest  true  "Fields to change"
// @Success      200   {object}  domain.Country
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/countries/{code} [put]
func (h *CountryHandler) Update(c echo.Context) error {
	var req updateCountryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	country, err := h.service.Update(c.Request().Context(), c.Param("code"), ports.CountryPatch{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, country)
}

// Delete handles DELETE /api/countries/:code.
//
// @Summary      Delete a country
// @Tags         countries
// @Security     BearerAuth
// @Param        code  path  string  true  "ISO country code"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/countries/{code} [delete]
func (h *CountryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
