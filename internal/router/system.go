package router

import (
	"os"

	"github.com/deppfellow/venues/internal/handler"
	"github.com/deppfellow/venues/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints outside the business API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", m.Metrics.Handler())

	r.Static("/static", h.OpenAPI.StaticDir())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

// registerPublicSite serves the public site from dir, with index.html at
// "/". Registered routes take precedence. A missing dir is skipped.
func registerPublicSite(r *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}
	r.Static("/", dir)
}
