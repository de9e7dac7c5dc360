package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles the public checkout submission --> POST /orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	req := service.CreateOrderRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	idemKey := c.Request().Header.Get("Idempotency-Key")
	orderNumber, err := h.orderService.CreateOrder(c.Request().Context(), req, idemKey)
	if err != nil {
		var ve service.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(400, map[string]string{"error": ve.Error()})
		}
		// Public route: never leak the underlying persistence error.
		return c.JSON(500, map[string]string{"error": "could not create order"})
	}

	return c.JSON(200, map[string]string{"order_number": orderNumber})
}

// TrackOrders looks up orders by number or phone --> GET /track-order
func (h *OrderHandler) TrackOrders(c echo.Context) error {
	orderNumber := c.QueryParam("order_number")
	phone := c.QueryParam("phone")
	if orderNumber == "" && phone == "" {
		return c.JSON(400, map[string]string{"error": "order_number or phone is required"})
	}

	orders, err := h.orderService.TrackOrders(c.Request().Context(), orderNumber, phone)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, orders)
}

// ListOrders serves the admin order list --> GET /admin/orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	status := c.QueryParam("status")
	limit := intQuery(c, "limit", 50, 1, 200)
	offset := intQuery(c, "offset", 0, 0, 1<<30)

	orders, err := h.orderService.ListOrders(c.Request().Context(), status, limit, offset)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, orders)
}

// UpdateOrderStatus moves an order through the status enum --> PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}

	body := struct {
		Status string `json:"status"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.orderService.UpdateOrderStatus(c.Request().Context(), id, body.Status); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Order updated"})
}

// DeleteOrder removes an order and its items --> DELETE /admin/orders?id=
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Order deleted"})
}
