package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/focustrack/focus-tracker-api/internal/core/service"
)

// ctxClaims extracts the claims injected by the Auth middleware and
// fast-fails before any service call: a missing or id-less claim set means
// the middleware did not run or the token carried no usable identity.
func ctxClaims(c echo.Context) (*service.Claims, error) {
	claims, _ := c.Get("claims").(*service.Claims)
	if claims == nil || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
