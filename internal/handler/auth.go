package handler

import (
	"github.com/deppfellow/venues/internal/errs"
	"github.com/deppfellow/venues/internal/middleware"
	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/server"
	"github.com/deppfellow/venues/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Signup(c echo.Context, req *model.CredentialsRequest) (*model.MessageResponse, error) {
	if err := h.auth.Signup(c.Request().Context(), req.Username, req.Password); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "User created successfully"}, nil
}

func (h *AuthHandler) Login(c echo.Context, req *model.CredentialsRequest) (*model.LoginResponse, error) {
	signed, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Message: "Login successful", Token: signed}, nil
}

// Me describes the caller. It only runs behind RequireAuth.
func (h *AuthHandler) Me(c echo.Context, _ *model.EmptyRequest) (*model.IdentityResponse, error) {
	identity, ok := middleware.IdentityFromContext(c.Request().Context())
	if !ok {
		return nil, errs.NewUnauthorizedError("Unauthorized", false)
	}
	return &model.IdentityResponse{UserID: identity.UserID, Username: identity.Username}, nil
}
