package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthServer(t *testing.T, driver string) *server.Server {
	t.Helper()

	t.Setenv("VENUES_STORAGE__DRIVER", driver)
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	logger := zerolog.Nop()
	return &server.Server{Config: cfg, Logger: &logger}
}

func checkHealth(t *testing.T, s *server.Server) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, NewHealthHandler(s).CheckHealth(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealth_MemoryStorage(t *testing.T) {
	status, body := checkHealth(t, newHealthServer(t, config.StorageDriverMemory))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, config.StorageDriverMemory, body["storage"])

	checks := body["checks"].(map[string]any)
	assert.Contains(t, checks, "storage")
	assert.NotContains(t, checks, "redis")
}

func TestCheckHealth_UnreachableStorage(t *testing.T) {
	s := newHealthServer(t, config.StorageDriverRedis)
	s.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = s.Redis.Close() })

	status, body := checkHealth(t, s)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
	assert.NotContains(t, string(mustJSON(t, body)), "127.0.0.1")
}

func TestCheckHealth_OptionalRedisDoesNotFail(t *testing.T) {
	s := newHealthServer(t, config.StorageDriverMemory)
	s.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = s.Redis.Close() })

	status, body := checkHealth(t, s)

	assert.Equal(t, http.StatusOK, status)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "unhealthy", checks["redis"].(map[string]any)["status"])
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
