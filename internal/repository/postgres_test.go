package repository

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("venues_test"),
		tcpostgres.WithUsername("venues"),
		tcpostgres.WithPassword("venues-test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &config.Config{Database: config.DatabaseConfig{URL: dbURL}}
	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresStores(t *testing.T) {
	pool := setupPostgres(t)

	t.Run("venues", func(t *testing.T) {
		testVenueStore(t, NewPostgresVenueStore(pool), "999999")
	})

	t.Run("users", func(t *testing.T) {
		testUserStore(t, NewPostgresUserStore(pool))
	})
}
