package service

import (
	"context"
	"errors"
	"sync"

	"github.com/deppfellow/venues/internal/errs"
	"github.com/deppfellow/venues/internal/repository"
	"github.com/deppfellow/venues/internal/server"
	"golang.org/x/crypto/bcrypt"
)

const codeUsernameTaken = "USERNAME_TAKEN"

var (
	errUsernameTaken      = errs.NewConflictError("Username already exists", codeUsernameTaken)
	errInvalidCredentials = errs.NewUnauthorizedError("Invalid credentials", false)
	codePasswordTooLong   = "PASSWORD_TOO_LONG"
)

// AuthService owns signup and login. Passwords are bcrypt hashed with the
// configured cost and never logged.
type AuthService struct {
	server *server.Server
	users  repository.UserStore

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(s *server.Server, users repository.UserStore) *AuthService {
	return &AuthService{
		server: s,
		users:  users,
	}
}

// Signup stores a new credential. It does not log the user in.
func (a *AuthService) Signup(ctx context.Context, username, password string) error {
	_, err := a.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return errUsernameTaken
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.server.Config.Auth.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return errs.NewBadRequestError("Password must not exceed 72 bytes", false, &codePasswordTooLong, nil)
		}
		return err
	}

	// A concurrent signup can win between the lookup and the insert.
	user, err := a.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return errUsernameTaken
		}
		return err
	}

	a.server.Logger.Info().
		Str("user_id", user.ID.String()).
		Msg("user signed up")
	return nil
}

// Login verifies the credential and issues a session token. An unknown
// username and a wrong password produce the same error, and both pay for a
// bcrypt comparison.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummy(), []byte(password))
			return "", errInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	signed, err := a.server.Tokens.Issue(*user)
	if err != nil {
		return "", err
	}

	a.server.Logger.Info().
		Str("user_id", user.ID.String()).
		Msg("user logged in")
	return signed, nil
}

func (a *AuthService) dummy() []byte {
	a.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("venues-dummy-password"), a.server.Config.Auth.BcryptCost)
		if err != nil {
			// cost already validated by config, but never leave the hash empty
			hash, _ = bcrypt.GenerateFromPassword([]byte("venues-dummy-password"), bcrypt.DefaultCost)
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}
