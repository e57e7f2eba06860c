package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Authentication happens upstream; the gateway forwards the caller in these
// headers.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	RoleAdmin = "admin"

	callerKey = "caller_id"
)

// Identity rejects requests without a caller id and stores it on the context.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			}
			c.Set(callerKey, id)
			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !strings.EqualFold(c.Request().Header.Get(HeaderUserRole), RoleAdmin) {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}
			return next(c)
		}
	}
}

func CallerID(c echo.Context) string {
	id, _ := c.Get(callerKey).(string)
	return id
}
