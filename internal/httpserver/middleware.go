package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maksline/marketfront/internal/models"
	"github.com/maksline/marketfront/internal/repo"
	"github.com/maksline/marketfront/internal/service"
)

const actorKey = "actor"

// RequireAuth parses the bearer token and loads the current user from the
// store, so role edits and shop approvals apply to in-flight sessions.
func RequireAuth(r *repo.GormRepo, secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := service.ParseAccessToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := r.GetUser(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}

			c.Set(actorKey, user)
			return next(c)
		}
	}
}

func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if actor(c) == nil || actor(c).Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

func actor(c echo.Context) *models.User {
	if u, ok := c.Get(actorKey).(*models.User); ok {
		return u
	}
	return nil
}
