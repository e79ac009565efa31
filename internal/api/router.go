package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cadmin/cadmin-api/docs"
	"github.com/cadmin/cadmin-api/internal/api/handler"
	"github.com/cadmin/cadmin-api/internal/api/middleware"
	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/core/ports"
)

// Deps are the services and probes the router exposes.
type Deps struct {
	Auth      ports.AuthService
	Users     ports.UserService
	Resources ports.ResourceService
	Stats     ports.StatsService
	Pingers   []handler.Pinger

	Logger      zerolog.Logger
	CORSOrigins []string
	// StaticDir, when set, is served as a single-page app outside /api.
	StaticDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// HTTP metrics go to a per-router registry so several routers can coexist
	// in one process; /metrics serves it alongside the default registry.
	registry := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			d.Logger.Error().Err(err).Bytes("stack", stack).Str("path", c.Path()).Msg("panic recovered")
			return err
		},
	}))
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "cadmin",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, registry},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	resourceHandler := handler.NewResourceHandler(d.Resources)
	userHandler := handler.NewUserHandler(d.Users)
	statsHandler := handler.NewStatsHandler(d.Stats)
	healthHandler := handler.NewHealthHandler(d.Pingers...)
	authMiddleware := middleware.Auth(d.Auth)

	api := e.Group("/api")
	api.GET("/docs/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Resources (any authenticated role, scoped by ownership) ---
	resources := api.Group("/resources", authMiddleware)
	resources.GET("", resourceHandler.List)
	resources.POST("", resourceHandler.Create)
	resources.GET("/meta/categories", resourceHandler.Categories)
	resources.GET("/:id", resourceHandler.Get)
	resources.PATCH("/:id", resourceHandler.Update)
	resources.DELETE("/:id", resourceHandler.Delete)

	// --- Users (administrators) ---
	users := api.Group("/users", authMiddleware, middleware.RequireRole(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, middleware.RequireRole(domain.RoleSuperAdmin))

	// --- Stats (administrators) ---
	api.GET("/stats", statsHandler.Get, authMiddleware, middleware.RequireRole(domain.RoleAdmin))

	if d.StaticDir != "" {
		e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
			Root:  d.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api") || p == "/metrics"
			},
		}))
	}

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
