package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/nolivos/client-registry/docs"
	"github.com/nolivos/client-registry/internal/api/handler"
	"github.com/nolivos/client-registry/internal/api/middleware"
	"github.com/nolivos/client-registry/internal/core/ports"
)

// Dependencies carries everything the HTTP layer needs. Services are built
// in main so the router stays free of storage concerns.
type Dependencies struct {
	Sessions ports.SessionService
	Clients  ports.ClientService
	Activity ports.ActivityRepository
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.Metrics())

	authMiddleware := middleware.Auth(deps.Sessions)

	// --- Session routes ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	e.POST("/auth/login", sessionHandler.Login)
	e.POST("/auth/logout", sessionHandler.Logout, authMiddleware)
	e.GET("/auth/session", sessionHandler.Current, authMiddleware)

	// --- Client registry (authenticated) ---
	clientHandler := handler.NewClientHandler(deps.Clients)
	activityHandler := handler.NewActivityHandler(deps.Activity)

	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/clients", clientHandler.Create)
	v1.GET("/clients", clientHandler.List)
	v1.GET("/clients/draft", clientHandler.Draft)
	v1.GET("/clients/search", clientHandler.Search)
	v1.GET("/clients/:id", clientHandler.Get)
	v1.GET("/stats", clientHandler.Stats)
	v1.GET("/activity", activityHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
