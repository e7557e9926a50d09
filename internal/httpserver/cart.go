package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/service"
	"github.com/maksline/marketfront/internal/transport"
)

type CartHandler struct {
	Svc *service.CartService
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	user := actor(c)

	lines, err := h.Svc.Items(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}
	total, err := h.Svc.Total(ctx, user.ID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"items": lines,
		"total": total,
	})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req transport.AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.Svc.Add(c.Request().Context(), actor(c).ID, req.ProductID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req transport.UpdateQuantityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.Svc.UpdateQuantity(c.Request().Context(), actor(c).ID, c.Param("productID"), req.Quantity)
	if err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	if err := h.Svc.Remove(c.Request().Context(), actor(c).ID, c.Param("productID")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
