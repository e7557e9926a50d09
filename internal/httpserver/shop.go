package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/service"
)

type ShopHandler struct {
	Svc *service.ShopService
}

// GetShop backs the shopkeeper dashboard; it only reveals the shop record
// (name, approval state), so any authenticated user may read it.
func (h *ShopHandler) GetShop(c echo.Context) error {
	shop, err := h.Svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shop)
}
