package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFromContext_ReturnsRequestLogger(t *testing.T) {
	s := newTestServer()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/venues", nil), httptest.NewRecorder())

	fallback := zerolog.Nop()
	var fromCtx *zerolog.Logger
	err := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		fromCtx = LoggerFromContext(c.Request().Context(), &fallback)
		return nil
	})(c)
	require.NoError(t, err)

	assert.Same(t, GetLogger(c), fromCtx)
	assert.NotSame(t, &fallback, fromCtx)
}

func TestLoggerFromContext_FallsBackOutsideRequest(t *testing.T) {
	fallback := zerolog.Nop()
	assert.Same(t, &fallback, LoggerFromContext(context.Background(), &fallback))
}
