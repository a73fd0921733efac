package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type authService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type AuthHandler struct {
	Handler
	auth authService
}

func NewAuthHandler(s *server.Server, auth authService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Login(c echo.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	return h.auth.Login(c.Request().Context(), req)
}
