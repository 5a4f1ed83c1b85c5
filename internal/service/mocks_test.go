package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/lib/token"
	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret"

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			SecretKey:  testSecret,
			Issuer:     "venues",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}

	return &server.Server{
		Config: cfg,
		Logger: &logger,
		Tokens: token.NewIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL, cfg.Auth.Issuer),
	}
}

type mockVenueStore struct {
	mock.Mock
	ids model.IDCodec
}

func (m *mockVenueStore) IDs() model.IDCodec {
	return m.ids
}

func (m *mockVenueStore) List(ctx context.Context) ([]model.Venue, error) {
	args := m.Called(ctx)
	venues, _ := args.Get(0).([]model.Venue)
	return venues, args.Error(1)
}

func (m *mockVenueStore) Create(ctx context.Context, params model.VenueParams) (*model.Venue, error) {
	args := m.Called(ctx, params)
	venue, _ := args.Get(0).(*model.Venue)
	return venue, args.Error(1)
}

func (m *mockVenueStore) Update(ctx context.Context, id model.ID, params model.VenueParams) (*model.Venue, error) {
	args := m.Called(ctx, id, params)
	venue, _ := args.Get(0).(*model.Venue)
	return venue, args.Error(1)
}

func (m *mockVenueStore) Delete(ctx context.Context, id model.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockVenueStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockLinkChecker struct {
	mock.Mock
}

func (m *mockLinkChecker) EnqueueLinkCheck(ctx context.Context, venue model.Venue) error {
	return m.Called(ctx, venue).Error(0)
}
