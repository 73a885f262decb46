package auth

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"blizzint/internal/model"
)

// Identity is the authenticated caller as asserted by the request token.
type Identity struct {
	UserID uint
	Email  string
	Role   string
}

// IdentityFromContext extracts the caller identity placed on the context by
// the JWT middleware.
func IdentityFromContext(c echo.Context) (*Identity, bool) {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, false
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, false
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &Identity{UserID: uint(id), Email: email, Role: role}, true
}

// AdminOnly is the role gate composed after the JWT middleware: a valid
// token whose role claim is not admin gets 403.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := IdentityFromContext(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		if ident.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}
