package middleware

import (
	"errors"
	"time"

	"github.com/deppfellow/venues/internal/errs"
	"github.com/deppfellow/venues/internal/lib/token"
	"github.com/deppfellow/venues/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth verifies the bearer token and attaches the caller identity to
// the echo and request contexts. Any failure stops the chain with a 401.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		raw, err := token.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("missing bearer token")
			return errs.NewUnauthorizedError("Missing or malformed authorization header", false)
		}

		claims, err := auth.server.Tokens.Verify(raw)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, token.ErrTokenExpired) {
				reason = "expired"
			}
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Str("reason", reason).
				Dur("duration", time.Since(start)).
				Msg("rejected bearer token")
			return errs.NewUnauthorizedError("Invalid or expired token", false)
		}

		setIdentity(c, Identity{UserID: claims.UserID, Username: claims.Username})

		requestLogger := GetLogger(c).With().Str("user_id", claims.UserID).Logger()
		setLogger(c, &requestLogger)

		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.AddAttribute("user.id", claims.UserID)
		}

		requestLogger.Debug().
			Str("function", "RequireAuth").
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}
}

// RequireAuthIf applies RequireAuth only when enabled is true.
func (auth *AuthMiddleware) RequireAuthIf(enabled bool) echo.MiddlewareFunc {
	if !enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return auth.RequireAuth
}
