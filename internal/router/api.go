package router

import (
	"net/http"

	"github.com/deppfellow/venues/internal/handler"
	"github.com/deppfellow/venues/internal/middleware"
	"github.com/deppfellow/venues/internal/model"
	"github.com/labstack/echo/v4"
)

// registerVenueRoutes mounts venue CRUD. With requireAuth the mutating
// routes sit behind RequireAuth.
func registerVenueRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares, requireAuth bool) {
	venues := api.Group("/venues")
	guard := m.Auth.RequireAuthIf(requireAuth)

	venues.GET("", handler.Handle(h.Venues.Handler, h.Venues.ListVenues, http.StatusOK, &model.EmptyRequest{}))
	venues.POST("", handler.Handle(h.Venues.Handler, h.Venues.CreateVenue, http.StatusCreated, &model.CreateVenueRequest{}), guard)
	venues.PUT("/:id", handler.Handle(h.Venues.Handler, h.Venues.UpdateVenue, http.StatusOK, &model.UpdateVenueRequest{}), guard)
	venues.DELETE("/:id", handler.Handle(h.Venues.Handler, h.Venues.DeleteVenue, http.StatusOK, &model.DeleteVenueRequest{}), guard)
}

func registerAuthRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	limiter := m.RateLimit.AuthLimiter()

	api.POST("/signup", handler.Handle(h.Auth.Handler, h.Auth.Signup, http.StatusCreated, &model.CredentialsRequest{}), limiter)
	api.POST("/login", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK, &model.CredentialsRequest{}), limiter)
	api.GET("/me", handler.Handle(h.Auth.Handler, h.Auth.Me, http.StatusOK, &model.EmptyRequest{}), m.Auth.RequireAuth)
}
