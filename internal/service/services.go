// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// requests from the handlers, validates identifiers against the active
// storage engine, calls the stores and translates store outcomes into
// application errors.
package service

import (
	"github.com/deppfellow/venues/internal/repository"
	"github.com/deppfellow/venues/internal/server"
)

type Services struct {
	Auth   *AuthService
	Venues *VenueService

	// Seed is nil when seed.enabled is false.
	Seed *Seeder
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	venueService := NewVenueService(s, repos.Venues)
	// A nil *JobService must not become a non-nil LinkChecker.
	if s.Job != nil {
		venueService.links = s.Job
	}

	services := &Services{
		Auth:   NewAuthService(s, repos.Users),
		Venues: venueService,
	}

	if s.Config.Seed.Enabled {
		seeder, err := NewSeeder(s, repos.Venues)
		if err != nil {
			return nil, err
		}
		services.Seed = seeder
	}

	return services, nil
}
