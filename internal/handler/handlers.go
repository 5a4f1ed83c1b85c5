package handler

import (
	"github.com/deppfellow/venues/internal/server"
	"github.com/deppfellow/venues/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Venues  *VenueHandler
	Auth    *AuthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Venues:  NewVenueHandler(s, services.Venues),
		Auth:    NewAuthHandler(s, services.Auth),
	}
}
