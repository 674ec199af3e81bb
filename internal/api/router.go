package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/accounts-api/internal/api/handler"
	"github.com/userhub/accounts-api/internal/api/middleware"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
	"github.com/userhub/accounts-api/internal/core/service"
	mongodb "github.com/userhub/accounts-api/internal/infrastructure/db/mongo"
)

// NewEcho builds the base Echo instance: error handler, validator, global
// middleware and the unauthenticated utility routes.
func NewEcho(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/teapot", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "I'm a teapot")
	})

	return e
}

// Register mounts the auth and user routes over the given store. Split out
// from NewRouter so tests can drive the full route stack against an
// in-memory repository.
func Register(e *echo.Echo, users ports.UserRepository, audit ports.AuditTrail, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) {
	tokens := service.NewTokenService(jwtSecret, tokenTTL)
	authorizer := service.NewAuthorizer(tokens, users, audit, log)

	authHandler := handler.NewAuthHandler(service.NewAuthService(users, tokens, audit, log))
	userHandler := handler.NewUserHandler(service.NewUserService(users, audit, log))

	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	usersGroup := e.Group("/api/users", middleware.Auth(authorizer))
	usersGroup.GET("", userHandler.List, middleware.RequireTier(authorizer, domain.TierAnyAuthenticated))
	usersGroup.GET("/:username", userHandler.Get, middleware.SelfOrAdmin(authorizer, "username"))
	usersGroup.DELETE("/:username", userHandler.Delete, middleware.RequireTier(authorizer, domain.TierAdminOnly))
}

// NewRouter is the production assembly: mongo-backed store, prometheus HTTP
// metrics and the readiness probe.
func NewRouter(db *mongo.Database, audit ports.AuditTrail, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := NewEcho(log)

	e.Use(echoprometheus.NewMiddleware("accounts"))
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health/ready", handler.NewReadinessHandler(db).Readiness)

	Register(e, mongodb.NewUserRepository(db), audit, jwtSecret, tokenTTL, log)
	return e
}
