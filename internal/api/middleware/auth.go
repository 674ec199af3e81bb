package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/core/service"
)

// AuthContextKey is the echo context key under which Auth stores the
// resolved *domain.AuthContext.
const AuthContextKey = "auth_context"

// Auth runs the token and role-resolution stages of the authorization chain
// and injects the resulting AuthContext. Role resolution never rejects here;
// tier middleware downstream decides what an unresolved role means.
func Auth(az *service.Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			authCtx, err := az.Authenticate(c.Request().Context(), header)
			if err != nil {
				metrics.AuthDecisionsTotal.WithLabelValues("rejected", "token").Inc()
				return err
			}

			c.Set(AuthContextKey, authCtx)
			return next(c)
		}
	}
}
