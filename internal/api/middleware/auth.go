package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/focustrack/focus-tracker-api/internal/core/service"
)

// Auth extracts the bearer token, verifies it and injects the claims into
// the request context. Invalid and expired tokens surface identically as
// 401; the distinction stays server-side.
func Auth(tokens *service.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			if tokens == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "server misconfiguration: signing secret missing")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("claims", claims)
			return next(c)
		}
	}
}
