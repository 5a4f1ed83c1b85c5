// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/venues/internal/handler"
	"github.com/deppfellow/venues/internal/middleware"
	"github.com/deppfellow/venues/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with global middleware, system
// routes, the API and the public site.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: tracing and request id feed the context logger, which
	// the request logger and handlers read.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, middlewares)

	api := router.Group("/api")
	registerVenueRoutes(api, h, middlewares, s.Config.Auth.RequireAuthForMutations)
	registerAuthRoutes(api, h, middlewares)

	registerPublicSite(router, s.Config.Server.PublicDir)

	return router
}
