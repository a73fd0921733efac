package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type userGroupService interface {
	List(ctx context.Context) ([]model.UserGroup, error)
	Get(ctx context.Context, id int64) (*model.UserGroup, error)
	Create(ctx context.Context, req *model.CreateUserGroupRequest) (*model.UserGroup, error)
	Update(ctx context.Context, req *model.UpdateUserGroupRequest) (*model.UserGroup, error)
	Delete(ctx context.Context, id int64) (*model.SuccessResponse, error)
}

type UserGroupHandler struct {
	Handler
	groups userGroupService
}

func NewUserGroupHandler(s *server.Server, groups userGroupService) *UserGroupHandler {
	return &UserGroupHandler{
		Handler: NewHandler(s),
		groups:  groups,
	}
}

func (h *UserGroupHandler) Get(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.groups.Get(c.Request().Context(), req.ID)
	}
	return h.groups.List(c.Request().Context())
}

func (h *UserGroupHandler) Create(c echo.Context, req *model.CreateUserGroupRequest) (*model.UserGroup, error) {
	return h.groups.Create(c.Request().Context(), req)
}

func (h *UserGroupHandler) Update(c echo.Context, req *model.UpdateUserGroupRequest) (*model.UserGroup, error) {
	return h.groups.Update(c.Request().Context(), req)
}

func (h *UserGroupHandler) Delete(c echo.Context, req *model.IDRequest) (*model.SuccessResponse, error) {
	return h.groups.Delete(c.Request().Context(), req.ID)
}
