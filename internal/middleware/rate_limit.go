package middleware

import (
	"time"

	"github.com/deppfellow/venues/internal/errs"
	"github.com/deppfellow/venues/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type RateLimitMiddleware struct {
	server  *server.Server
	metrics *MetricsMiddleware
}

func NewRateLimitMiddleware(s *server.Server, metrics *MetricsMiddleware) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:  s,
		metrics: metrics,
	}
}

// AuthLimiter limits signup and login attempts per client IP. A
// non-positive rate disables it.
func (r *RateLimitMiddleware) AuthLimiter() echo.MiddlewareFunc {
	cfg := r.server.Config.RateLimit
	if cfg.AuthRequestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.AuthRequestsPerSecond),
		Burst:     cfg.AuthBurst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			return errs.NewTooManyRequestsError("Too many requests, try again later")
		},
	})
}

// RecordRateLimitHit reports a rejected request to Prometheus and New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.metrics != nil {
		r.metrics.RecordRateLimitHit(endpoint)
	}

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
