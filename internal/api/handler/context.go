package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - a USER token must carry its owner's id; without it the JWT is
//     structurally valid but operationally unusable — reject with 401.
func ctxClaims(c echo.Context) (role domain.Role, userID int64, err error) {
	roleStr, _ := c.Get("role").(string)
	if roleStr == "" {
		return "", 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role = domain.Role(roleStr)

	userID, _ = c.Get("user_id").(int64)
	if role == domain.RoleUser && userID == 0 {
		return "", 0, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return role, userID, nil
}

// pathID parses the named path parameter as a positive int64.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
