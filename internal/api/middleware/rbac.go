package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/api/metrics"
	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// RequireRole gates a route on the given role. ADMIN principals satisfy
// USER-gated routes through their expanded authority set; anonymous
// requests are rejected outright.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := CurrentPrincipal(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !principal.HasAuthority(required) {
				metrics.AuthFailuresTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
