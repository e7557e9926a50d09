package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/service"
	"github.com/maksline/marketfront/internal/transport"
)

// AdminHandler groups the admin-only surfaces: user management, shop
// onboarding decisions and the automation registry.
type AdminHandler struct {
	Users       *service.UserService
	Shops       *service.ShopService
	Automations *service.AutomationService
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context(), actor(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req transport.UpdateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Users.UpdateRole(c.Request().Context(), actor(c), c.Param("id"), models.Role(req.Role))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.Users.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *AdminHandler) UpdateShopkeeperPermission(c echo.Context) error {
	var req transport.UpdatePermissionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Users.UpdateShopkeeperPermission(c.Request().Context(), actor(c), c.Param("id"), req.CanAddProducts)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) ListShops(c echo.Context) error {
	shops, err := h.Shops.List(c.Request().Context(), actor(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shops)
}

func (h *AdminHandler) ApproveShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.approve_shop")

	shop, err := h.Shops.Approve(ctx, actor(c), c.Param("id"))
	if err != nil {
		l.Warn("approve_shop_error", "error", err)
		return httpError(err)
	}

	l.Info("approve_shop_success", "shop", shop.ID)
	return c.JSON(http.StatusOK, shop)
}

func (h *AdminHandler) RejectShop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.reject_shop")

	if err := h.Shops.Reject(ctx, actor(c), c.Param("id")); err != nil {
		l.Warn("reject_shop_error", "error", err)
		return httpError(err)
	}

	l.Info("reject_shop_success", "shop", c.Param("id"))
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *AdminHandler) ListAutomations(c echo.Context) error {
	rules, err := h.Automations.List(c.Request().Context(), actor(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *AdminHandler) AddAutomation(c echo.Context) error {
	var req transport.AutomationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	rule, err := h.Automations.Add(c.Request().Context(), actor(c), models.AutomationRule{
		Name:    req.Name,
		Trigger: models.RuleTrigger(req.Trigger),
		Action:  models.RuleAction(req.Action),
		Config:  models.RuleConfig{Threshold: req.Threshold},
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rule)
}

func (h *AdminHandler) DeleteAutomation(c echo.Context) error {
	if err := h.Automations.Delete(c.Request().Context(), actor(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
