package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/venues/internal/errs"
	"github.com/deppfellow/venues/internal/lib/token"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_SignupHashesPassword(t *testing.T) {
	users := repository.NewMemoryUserStore()
	svc := NewAuthService(newTestServer(t), users)

	require.NoError(t, svc.Signup(context.Background(), "ada", "lovelace"))

	user, err := users.GetByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.NotEqual(t, "lovelace", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("lovelace")))
}

func TestAuthService_DuplicateSignupConflicts(t *testing.T) {
	users := repository.NewMemoryUserStore()
	svc := NewAuthService(newTestServer(t), users)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, "ada", "first"))

	err := svc.Signup(ctx, "ada", "second")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USERNAME_TAKEN", httpErr.Code)

	// the original credential survives
	user, err := users.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("first")))
}

func TestAuthService_SignupRejectsOverlongPassword(t *testing.T) {
	svc := NewAuthService(newTestServer(t), repository.NewMemoryUserStore())

	err := svc.Signup(context.Background(), "ada", strings.Repeat("é", 40))
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestAuthService_Login(t *testing.T) {
	s := newTestServer(t)
	svc := NewAuthService(s, repository.NewMemoryUserStore())
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, "ada", "lovelace"))

	signed, err := svc.Login(ctx, "ada", "lovelace")
	require.NoError(t, err)

	claims, err := s.Tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims.Username)
	assert.NotEmpty(t, claims.UserID)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	other := token.NewIssuer("another-secret", time.Hour, "venues")
	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestAuthService_LoginFailuresShareOneError(t *testing.T) {
	svc := NewAuthService(newTestServer(t), repository.NewMemoryUserStore())
	ctx := context.Background()
	require.NoError(t, svc.Signup(ctx, "ada", "lovelace"))

	_, wrongPassword := svc.Login(ctx, "ada", "babbage")
	_, unknownUser := svc.Login(ctx, "grace", "lovelace")

	var a, b *errs.HTTPError
	require.ErrorAs(t, wrongPassword, &a)
	require.ErrorAs(t, unknownUser, &b)
	assert.Equal(t, http.StatusUnauthorized, a.Status)
	assert.Equal(t, *a, *b)
}
