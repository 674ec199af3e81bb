package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// ctxAuth extracts the AuthContext injected by the Auth middleware and
// fast-fails before any service call: presence proves the middleware ran.
func ctxAuth(c echo.Context) (*domain.AuthContext, error) {
	authCtx, ok := c.Get("auth_context").(*domain.AuthContext)
	if !ok {
		return nil, domain.DeniedErr(domain.ErrTokenMissing)
	}
	return authCtx, nil
}
