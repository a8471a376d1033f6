package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type createProductRequest struct {
	Name   string  `json:"name"   validate:"required"`
	Price  float64 `json:"price"  validate:"required,gt=0"`
	Status string  `json:"status" validate:"required,oneof=AVAILABLE DISCONTINUED"`
}

type updateProductRequest struct {
	Name   *string  `json:"name"`
	Price  *float64 `json:"price"  validate:"omitempty,gt=0"`
	Status *string  `json:"status" validate:"omitempty,oneof=AVAILABLE DISCONTINUED"`
}

// priceParam parses an optional float query parameter; absent means no filter.
func priceParam(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return &v, nil
}

// List handles GET /api/products. Query parameters name, min_price,
// max_price, and status are optional filters combined with AND; with no
// parameters the full catalog comes back.
//
// @Summary      List products, optionally filtered
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        name       query     string  false  "Substring match on name"
// @Param        min_price  query     number  false  "Minimum price, inclusive"
// @Param        max_price  query     number  false  "Maximum price, inclusive"
// @Param        status     query     string  false  "AVAILABLE or DISCONTINUED"
// @Success      200        {array}   domain.Product
// @Failure      400        {object}  map[string]string
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	name := c.QueryParam("name")

	minPrice, err := priceParam(c, "min_price")
	if err != nil {
		return err
	}
	maxPrice, err := priceParam(c, "max_price")
	if err != nil {
		return err
	}

	var status *domain.ProductStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := domain.ProductStatus(raw)
		if !s.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = &s
	}

	products, err := h.service.FindWithFilters(c.Request().Context(), name, minPrice, maxPrice, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), domain.Product{
		Name:   req.Name,
		Price:  req.Price,
		Status: domain.ProductStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id. Absent fields keep their stored
// values.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := ports.ProductPatch{Name: req.Name, Price: req.Price}
	if req.Status != nil {
		s := domain.ProductStatus(*req.Status)
		patch.Status = &s
	}

	product, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  int  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
