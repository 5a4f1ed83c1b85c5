package middleware

import (
	"github.com/deppfellow/venues/internal/server"
)

// Middlewares groups every middleware component, built once per router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	metrics := NewMetricsMiddleware()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Metrics:         metrics,
		RateLimit:       NewRateLimitMiddleware(s, metrics),
	}
}
