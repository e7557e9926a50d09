package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/logging"
	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/service"
	"github.com/maksline/marketfront/internal/transport"
)

type AuthHandler struct {
	Svc       *service.AuthService
	JWTSecret []byte
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Svc.Login(ctx, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(err)
	}

	return h.respondWithToken(c, user)
}

// LoginAsAdmin is the explicit admin override entry point.
func (h *AuthHandler) LoginAsAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login_as_admin")

	user, err := h.Svc.LoginAsAdmin(ctx)
	if err != nil {
		l.Warn("login_as_admin_error", "error", err)
		return httpError(err)
	}

	l.Info("admin override used")
	return h.respondWithToken(c, user)
}

func (h *AuthHandler) SignupCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup_customer")

	var req transport.SignupCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.Svc.SignupCustomer(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		l.Warn("signup_customer_error", "error", err)
		return httpError(err)
	}

	return h.respondWithToken(c, user)
}

func (h *AuthHandler) SignupShopkeeper(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup_shopkeeper")

	var req transport.SignupShopkeeperRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, _, err := h.Svc.SignupShopkeeper(ctx, req.OwnerName, req.ShopName, req.Email, req.Password)
	if err != nil {
		l.Warn("signup_shopkeeper_error", "error", err)
		return httpError(err)
	}

	return h.respondWithToken(c, user)
}

// PasswordReset always answers success, regardless of whether the email
// exists. Account enumeration stays impossible from this endpoint.
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req transport.PasswordResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	h.Svc.SendPasswordReset(c.Request().Context(), req.Email)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *AuthHandler) respondWithToken(c echo.Context, user *models.User) error {
	token, err := service.SignAccessToken(user, h.JWTSecret)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.AuthResponse{User: user, AccessToken: token})
}
