package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/venues/internal/config"
	"github.com/deppfellow/venues/internal/middleware"
	"github.com/deppfellow/venues/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and dependency reachability.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

func (h *HealthHandler) dependencies() []dependencyCheck {
	cfg := h.server.Config
	var checks []dependencyCheck

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		if h.server.DB != nil {
			checks = append(checks, dependencyCheck{name: "storage", required: true, ping: h.server.DB.Pool.Ping})
		}
	case config.StorageDriverRedis:
		if h.server.Redis != nil {
			checks = append(checks, dependencyCheck{name: "storage", required: true, ping: func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			}})
		}
	default:
		checks = append(checks, dependencyCheck{name: "storage", required: true, ping: func(context.Context) error { return nil }})
	}

	// Redis used only by the job queue does not make the service unhealthy.
	if cfg.Storage.Driver != config.StorageDriverRedis && h.server.Redis != nil {
		checks = append(checks, dependencyCheck{name: "redis", ping: func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}})
	}

	return checks
}

func (h *HealthHandler) enabled(name string) bool {
	obs := h.server.Config.Observability
	if obs == nil || !obs.HealthChecks.Enabled {
		return false
	}
	for _, check := range obs.HealthChecks.Checks {
		if check == name {
			return true
		}
	}
	return false
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return 5 * time.Second
}

// CheckHealth returns 200 when every required dependency answers and 503
// otherwise. Dependency error text is logged, not returned.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"storage":     h.server.Config.Storage.Driver,
		"checks":      checks,
	}
	isHealthy := true

	for _, dep := range h.dependencies() {
		if !h.enabled(dep.name) {
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
		depStart := time.Now()
		err := dep.ping(ctx)
		cancel()

		if err != nil {
			checks[dep.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(depStart).String(),
			}
			if dep.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", dep.name).
				Dur("response_time", time.Since(depStart)).
				Msg("health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
					"check_type":       dep.name,
					"operation":        "health_check",
					"error_type":       dep.name + "_unhealthy",
					"response_time_ms": time.Since(depStart).Milliseconds(),
					"error_message":    err.Error(),
				})
			}
			continue
		}

		checks[dep.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(depStart).String(),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
