package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type systemUserService interface {
	List(ctx context.Context) ([]model.SystemUser, error)
	Get(ctx context.Context, id int64) (*model.SystemUser, error)
	Create(ctx context.Context, req *model.CreateSystemUserRequest) (*model.SystemUser, error)
	Update(ctx context.Context, req *model.UpdateSystemUserRequest) (*model.SystemUser, error)
	Delete(ctx context.Context, id int64) (*model.MessageResponse, error)
}

type SystemUserHandler struct {
	Handler
	users systemUserService
}

func NewSystemUserHandler(s *server.Server, users systemUserService) *SystemUserHandler {
	return &SystemUserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// Get lists users, or returns one when ?id is given.
func (h *SystemUserHandler) Get(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.users.Get(c.Request().Context(), req.ID)
	}
	return h.users.List(c.Request().Context())
}

func (h *SystemUserHandler) Create(c echo.Context, req *model.CreateSystemUserRequest) (*model.SystemUser, error) {
	return h.users.Create(c.Request().Context(), req)
}

func (h *SystemUserHandler) Update(c echo.Context, req *model.UpdateSystemUserRequest) (*model.SystemUser, error) {
	return h.users.Update(c.Request().Context(), req)
}

func (h *SystemUserHandler) Delete(c echo.Context, req *model.IDRequest) (*model.MessageResponse, error) {
	return h.users.Delete(c.Request().Context(), req.ID)
}
