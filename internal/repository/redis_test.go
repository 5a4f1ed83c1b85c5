package repository

import (
	"context"
	"testing"

	"github.com/deppfellow/venues/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return client
}

func TestRedisStores(t *testing.T) {
	client := setupRedis(t)

	t.Run("venues", func(t *testing.T) {
		store := NewRedisVenueStore(client)
		assert.Equal(t, "ulid", store.IDs().Name())
		testVenueStore(t, store, model.ULIDs{}.New())
	})

	t.Run("users", func(t *testing.T) {
		testUserStore(t, NewRedisUserStore(client))
	})
}
