package middleware

import (
	"context"

	"github.com/deppfellow/venues/internal/logger"
	"github.com/deppfellow/venues/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Echo context keys.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	LoggerKey   = "logger"
)

type contextKey string

// Go context keys, for code that only sees context.Context.
const (
	loggerContextKey   contextKey = "logger"
	identityContextKey contextKey = "identity"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   string
	Username string
}

// ContextEnhancer stores a request-scoped logger carrying correlation fields.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext must run after RequestID and the New Relic middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			if userID := GetUserID(c); userID != "" {
				contextLogger = contextLogger.With().Str("user_id", userID).Logger()
			}

			setLogger(c, &contextLogger)
			return next(c)
		}
	}
}

func setLogger(c echo.Context, l *zerolog.Logger) {
	c.Set(LoggerKey, l)
	ctx := context.WithValue(c.Request().Context(), loggerContextKey, l)
	c.SetRequest(c.Request().WithContext(ctx))
}

func setIdentity(c echo.Context, identity Identity) {
	c.Set(UserIDKey, identity.UserID)
	c.Set(UsernameKey, identity.Username)
	ctx := context.WithValue(c.Request().Context(), identityContextKey, identity)
	c.SetRequest(c.Request().WithContext(ctx))
}

func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

func GetUsername(c echo.Context) string {
	if username, ok := c.Get(UsernameKey).(string); ok {
		return username
	}
	return ""
}

// IdentityFromContext returns the caller set by RequireAuth.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// GetLogger retrieves the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}

	l := zerolog.Nop()
	return &l
}

// LoggerFromContext is GetLogger for code without an echo.Context. Outside
// a request it returns fallback.
func LoggerFromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*zerolog.Logger); ok {
		return l
	}
	return fallback
}
