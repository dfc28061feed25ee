package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/igilife/insurance-portal/internal/api/metrics"
	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// RequirePermission gates a route on the access engine's active role holding
// the given permission. A denial is a normal negative decision rendered as
// 403, never an internal error.
func RequirePermission(engine ports.AccessEngine, p domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !engine.HasPermission(p) {
				metrics.AccessDeniedTotal.WithLabelValues("permission", string(p)).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireService gates a route on the service id being on the active role's
// allow-list.
func RequireService(engine ports.AccessEngine, serviceID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !engine.CanAccessService(serviceID) {
				metrics.AccessDeniedTotal.WithLabelValues("service", serviceID).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
