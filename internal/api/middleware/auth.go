package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/random-knowledge/knowledge-api/internal/api/metrics"
	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// principalContextKey scopes the resolved principal to the echo request
// context, which dies with the request. Identity never leaks across
// requests on reused connections.
const principalContextKey = "auth_principal"

// Authenticate resolves the caller's identity once per request. Requests
// without a bearer token continue anonymously; requests presenting a token
// must carry a valid one or are rejected before any handler runs.
func Authenticate(auth ports.AuthService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				return next(c)
			}

			subject, err := auth.ExtractSubject(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("unknown_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(principalContextKey, domain.NewPrincipal(user))
			return next(c)
		}
	}
}

// CurrentPrincipal returns the principal bound to the request, or nil for
// anonymous requests.
func CurrentPrincipal(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalContextKey).(*domain.Principal)
	return p
}

// BindPrincipal attaches a principal to the request context. Used by the
// refresh flow, where the token being exchanged is itself the credential.
func BindPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalContextKey, p)
}
