package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"blizzint/internal/model"
)

func contextWithRole(e *echo.Echo, role string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user", jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"id":    float64(1),
		"email": "someone@example.com",
		"role":  role,
	}))
	return c
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("admin passes", func(t *testing.T) {
		c := contextWithRole(e, model.RoleAdmin)
		assert.NoError(t, AdminOnly(next)(c))
	})

	t.Run("user role is forbidden", func(t *testing.T) {
		c := contextWithRole(e, model.RoleUser)
		err := AdminOnly(next)(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		err := AdminOnly(next)(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestIdentityFromContext(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, model.RoleUser)

	ident, ok := IdentityFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, uint(1), ident.UserID)
	assert.Equal(t, "someone@example.com", ident.Email)
	assert.Equal(t, model.RoleUser, ident.Role)
}
