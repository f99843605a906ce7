// Package server assembles the echo application: middleware, renderer,
// error handling and routes.
package server

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kayotsaha/authweb/internal/config"
	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/handlers"
	appmiddleware "github.com/kayotsaha/authweb/internal/middleware"
	"github.com/kayotsaha/authweb/internal/pubsub"
	"github.com/kayotsaha/authweb/internal/rendering"
	"github.com/kayotsaha/authweb/internal/storage"
	"github.com/kayotsaha/authweb/web"
)

// Deps are the collaborators the server is built from.
type Deps struct {
	Config    config.Provider
	Logger    *slog.Logger
	API       flow.AuthAPI
	Publisher pubsub.Publisher
	// Gatherer backs /metrics.
	Gatherer prometheus.Gatherer
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E                *echo.Echo
	cfg              config.Provider
	gatherer         prometheus.Gatherer
	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
}

// New creates a new Server with all routes registered.
func New(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmiddleware.Logger(logger))
	e.Use(middleware.Recover())
	e.Use(session.Middleware(storage.NewCookieStore(d.Config.GetSessionSecret(), d.Config.GetSessionSecure())))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s := &Server{
		E:                e,
		cfg:              d.Config,
		gatherer:         d.Gatherer,
		homeHandler:      handlers.NewHomeHandler(),
		authHandler:      handlers.NewAuthHandler(d.API, d.Publisher, d.Config.GetRedirectDelay()),
		dashboardHandler: handlers.NewDashboardHandler(),
	}
	s.RegisterRoutes()
	return s
}
