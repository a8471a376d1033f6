package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blanca/commerce-api/internal/api/metrics"
	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderProductRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Amount    int   `json:"amount"     validate:"required,gt=0"`
}

type createOrderRequest struct {
	UserID   int64                 `json:"user_id"        validate:"required,gt=0"`
	Products []orderProductRequest `json:"order_products" validate:"required,min=1,dive"`
}

type updateOrderRequest struct {
	Status   *string               `json:"status"  validate:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	UserID   *int64                `json:"user_id" validate:"omitempty,gt=0"`
	Products []orderProductRequest `json:"order_products" validate:"omitempty,min=1,dive"`
}

func toOrderProducts(reqs []orderProductRequest) []domain.OrderProduct {
	if reqs == nil {
		return nil
	}
	items := make([]domain.OrderProduct, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, domain.OrderProduct{ProductID: r.ProductID, Amount: r.Amount})
	}
	return items
}

// List handles GET /api/orders. ADMIN tokens see every order; USER tokens see
// only their own.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  map[string]string
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var orders []domain.Order
	if role == domain.RoleAdmin {
		orders, err = h.service.FindAll(c.Request().Context())
	} else {
		orders, err = h.service.FindByUserID(c.Request().Context(), userID)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/orders/:id. A USER token may only read its own
// orders; ADMIN may read any.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.service.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if role == domain.RoleUser && (order.User == nil || order.User.ID != userID) {
		return domain.ErrForbidden
	}

	return c.JSON(http.StatusOK, order)
}

// Create handles POST /api/orders. The order always starts PENDING. A USER
// token may only place orders for its own account.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if role == domain.RoleUser && req.UserID != userID {
		return domain.ErrForbidden
	}

	order, err := h.service.Create(c.Request().Context(), domain.Order{
		User:     &domain.User{ID: req.UserID},
		Products: toOrderProducts(req.Products),
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, order)
}

// Update handles PUT /api/orders/:id. Absent fields keep their stored
// values; a present order_products array replaces the line items wholesale.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Order id"
// @Param        body  body      updateOrderRequest  true  "Fields to change"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := ports.OrderPatch{
		UserID:   req.UserID,
		Products: toOrderProducts(req.Products),
	}
	if req.Status != nil {
		s := domain.OrderStatus(*req.Status)
		patch.Status = &s
	}

	order, err := h.service.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /api/orders/:id. Line items go with the order.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id   path  int  true  "Order id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
