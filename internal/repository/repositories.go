package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/server"
)

// VenueStore persists venue records for one storage engine.
//
// Update and Delete expect an id already parsed by IDs().
type VenueStore interface {
	IDs() model.IDCodec
	List(ctx context.Context) ([]model.Venue, error)
	Create(ctx context.Context, params model.VenueParams) (*model.Venue, error)
	Update(ctx context.Context, id model.ID, params model.VenueParams) (*model.Venue, error)
	Delete(ctx context.Context, id model.ID) error
	Count(ctx context.Context) (int64, error)
}

// UserStore persists credentials. Usernames are unique.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// Repositories is a container for the active engine's stores.
type Repositories struct {
	Venues VenueStore
	Users  UserStore
}

// NewRepositories builds the stores for the configured storage driver.
func NewRepositories(s *server.Server) (*Repositories, error) {
	switch s.Config.Storage.Driver {
	case config.StorageDriverPostgres:
		if s.DB == nil {
			return nil, fmt.Errorf("storage driver %q requires a database connection", s.Config.Storage.Driver)
		}
		return &Repositories{
			Venues: NewPostgresVenueStore(s.DB.Pool),
			Users:  NewPostgresUserStore(s.DB.Pool),
		}, nil

	case config.StorageDriverRedis:
		if s.Redis == nil {
			return nil, fmt.Errorf("storage driver %q requires a redis client", s.Config.Storage.Driver)
		}
		return &Repositories{
			Venues: NewRedisVenueStore(s.Redis),
			Users:  NewRedisUserStore(s.Redis),
		}, nil

	case config.StorageDriverMemory:
		return &Repositories{
			Venues: NewMemoryVenueStore(),
			Users:  NewMemoryUserStore(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.Config.Storage.Driver)
	}
}
