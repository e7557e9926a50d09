package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/service"
	"github.com/maksline/marketfront/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	var req transport.PlaceOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.Svc.Place(ctx, actor(c), models.PaymentMethod(req.PaymentMethod), req.UpiID)
	if err != nil {
		l.Warn("place_order_error", "error", err)
		return httpError(err)
	}

	l.Info("place_order_success", "order", order.ID, "total", order.Total.String())
	return c.JSON(http.StatusCreated, order)
}

// MyOrders returns the calling user's own order history.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	user := actor(c)
	orders, err := h.Svc.ListUser(c.Request().Context(), user, user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) AllOrders(c echo.Context) error {
	orders, err := h.Svc.ListAll(c.Request().Context(), actor(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ShopOrders(c echo.Context) error {
	orders, err := h.Svc.ListShop(c.Request().Context(), actor(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.Svc.UpdateStatus(ctx, actor(c), c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		l.Warn("update_status_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}
