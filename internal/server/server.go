// Package server defines the Server container that composes the app's
// shared dependencies and owns their lifecycle.
//
// It holds the config, the loggers, the storage connections the configured
// driver needs, the token issuer, the optional background job service and
// the http.Server itself.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/database"
	"github.com/deppfellow/venues/internal/lib/job"
	"github.com/deppfellow/venues/internal/lib/token"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/venues/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is nil unless the postgres storage driver is active.
	DB *database.Database

	// Redis backs the redis storage driver and the job queue. It is nil
	// when neither is in use.
	Redis *redis.Client

	// Tokens signs and verifies session tokens.
	Tokens *token.Issuer

	// Job is nil when jobs.enabled is false.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes the dependencies the config asks for.
//
// A redis failure is fatal only when redis is the storage driver; with jobs
// alone it is logged and the worker keeps retrying in the background.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Tokens:        token.NewIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL, cfg.Auth.Issuer),
	}

	if cfg.Storage.Driver == config.StorageDriverPostgres {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db
	}

	if cfg.Storage.Driver == config.StorageDriverRedis || cfg.Jobs.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if loggerService.GetApplication() != nil {
			redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			if cfg.Storage.Driver == config.StorageDriverRedis {
				_ = redisClient.Close()
				server.closeDB()
				return nil, fmt.Errorf("failed to connect to redis: %w", err)
			}
			logger.Error().Err(err).Msg("failed to connect to redis, background jobs will retry")
		}
		server.Redis = redisClient
	}

	if cfg.Jobs.Enabled {
		jobService := job.NewJobService(logger, cfg)
		jobService.InitHandlers(cfg, logger)

		if err := jobService.Start(); err != nil {
			_ = jobService.Client.Close()
			server.Close()
			return nil, fmt.Errorf("failed to start job service: %w", err)
		}
		server.Job = jobService
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("storage", s.Config.Storage.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then releases jobs, redis and the
// database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.Close()
	return nil
}

// Close releases the non-HTTP resources. Commands that never serve use it
// directly.
func (s *Server) Close() {
	if s.Job != nil {
		s.Job.Stop()
		s.Job = nil
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("failed to close redis client")
		}
		s.Redis = nil
	}

	s.closeDB()
}

func (s *Server) closeDB() {
	if s.DB == nil {
		return
	}
	if err := s.DB.Close(); err != nil {
		s.Logger.Error().Err(err).Msg("failed to close database connection")
	}
	s.DB = nil
}
