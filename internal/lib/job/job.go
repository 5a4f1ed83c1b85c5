// Package job provides background job processing using Asynq.
//
// Tasks are enqueued with the asynq Client and executed by an asynq Server
// whose workers pull them from Redis.
package job

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/model"
	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// httpClient is set by InitHandlers and used by the link check worker.
	httpClient *http.Client
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// NewJobService creates a JobService backed by the configured Redis.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	client := asynq.NewClient(redisOpt(cfg))

	concurrency := cfg.Jobs.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1, // link checks
			},
			Logger: &asynqLogger{logger: logger},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the workers. It does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskVenueLinkCheck, j.handleLinkCheckTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}
	return nil
}

// Stop shuts the workers down and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// EnqueueLinkCheck schedules a reachability check of the venue URL.
func (j *JobService) EnqueueLinkCheck(ctx context.Context, venue model.Venue) error {
	task, err := NewLinkCheckTask(venue)
	if err != nil {
		return errors.Wrap(err, "failed to build link check task")
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrapf(err, "failed to enqueue link check for venue id=%s", venue.ID)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("venue_id", venue.ID.String()).
		Msg("enqueued link check")
	return nil
}

// asynqLogger routes asynq's own logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(sprint(args)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(sprint(args)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(sprint(args)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(sprint(args)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(sprint(args)) }

func sprint(args []any) string {
	return fmt.Sprint(args...)
}
