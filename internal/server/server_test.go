package server

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClose_ReleasesRedisClient(t *testing.T) {
	logger := zerolog.Nop()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	s := &Server{Logger: &logger, Redis: client}

	s.Close()

	assert.Nil(t, s.Redis)
	assert.ErrorIs(t, client.Ping(context.Background()).Err(), redis.ErrClosed)

	require.NotPanics(t, s.Close)
}

func TestShutdown_WithoutHTTPServer(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Logger: &logger}

	assert.NoError(t, s.Shutdown(context.Background()))
}
