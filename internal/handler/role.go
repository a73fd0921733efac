package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type roleService interface {
	List(ctx context.Context) ([]model.Role, error)
	Get(ctx context.Context, id int64) (*model.Role, error)
	Create(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error)
	Update(ctx context.Context, req *model.UpdateRoleRequest) (*model.Role, error)
	Delete(ctx context.Context, id int64) (*model.MessageResponse, error)
}

type RoleHandler struct {
	Handler
	roles roleService
}

func NewRoleHandler(s *server.Server, roles roleService) *RoleHandler {
	return &RoleHandler{
		Handler: NewHandler(s),
		roles:   roles,
	}
}

func (h *RoleHandler) Get(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.roles.Get(c.Request().Context(), req.ID)
	}
	return h.roles.List(c.Request().Context())
}

func (h *RoleHandler) Create(c echo.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	return h.roles.Create(c.Request().Context(), req)
}

func (h *RoleHandler) Update(c echo.Context, req *model.UpdateRoleRequest) (*model.Role, error) {
	return h.roles.Update(c.Request().Context(), req)
}

func (h *RoleHandler) Delete(c echo.Context, req *model.IDRequest) (*model.MessageResponse, error) {
	return h.roles.Delete(c.Request().Context(), req.ID)
}
