package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/service"
)

// RequireTier enforces that the resolved role satisfies the given tier.
// Must run after Auth.
func RequireTier(az *service.Authorizer, tier domain.Tier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authCtx, ok := c.Get(AuthContextKey).(*domain.AuthContext)
			if !ok {
				return domain.DeniedErr(domain.ErrTokenMissing)
			}

			if err := az.CheckTier(authCtx, tier); err != nil {
				metrics.AuthDecisionsTotal.WithLabelValues("rejected", "tier").Inc()
				return err
			}

			metrics.AuthDecisionsTotal.WithLabelValues("authorized", "none").Inc()
			return next(c)
		}
	}
}

// SelfOrAdmin grants access when the subject is an admin or owns the resource
// named by the given path parameter. Must run after Auth.
func SelfOrAdmin(az *service.Authorizer, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authCtx, ok := c.Get(AuthContextKey).(*domain.AuthContext)
			if !ok {
				return domain.DeniedErr(domain.ErrTokenMissing)
			}

			if err := az.CheckOwner(authCtx, c.Param(param)); err != nil {
				metrics.AuthDecisionsTotal.WithLabelValues("rejected", "owner").Inc()
				return err
			}

			metrics.AuthDecisionsTotal.WithLabelValues("authorized", "none").Inc()
			return next(c)
		}
	}
}
