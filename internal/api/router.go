package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/qmsagent/console/internal/api/handler"
	"github.com/qmsagent/console/internal/api/middleware"
	"github.com/qmsagent/console/internal/api/navigation"
	"github.com/qmsagent/console/internal/core/ports"
)

// Dependencies carries the wired session core into the router.
type Dependencies struct {
	Sessions ports.SessionManager
	Identity ports.IdentityProvider
	Gateway  ports.Gateway
	Nav      *navigation.Tracker
	Redis    *redis.Client // nil when the file store is in use
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("console"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Identity, deps.Gateway, deps.Nav, deps.Log)
	pagesHandler := handler.NewPagesHandler(deps.Sessions)

	// --- Login surface and external-login round trip (no gate) ---
	e.GET("/login", authHandler.LoginPage)
	e.GET("/auth/google/start", authHandler.StartExternalLogin)
	e.GET("/auth/callback", authHandler.Callback)
	e.GET("/logout", authHandler.Logout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Protected views ---
	gate := middleware.Gate(deps.Sessions, deps.Nav)
	e.GET("/", pagesHandler.Dashboard, gate)

	return e
}
