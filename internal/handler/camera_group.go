package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type cameraGroupService interface {
	List(ctx context.Context) ([]model.CameraGroup, error)
	Get(ctx context.Context, id int64) (*model.CameraGroup, error)
	Create(ctx context.Context, req *model.CreateCameraGroupRequest) (*model.CreatedResponse, error)
	Update(ctx context.Context, req *model.UpdateCameraGroupRequest) (*model.MessageResponse, error)
	Delete(ctx context.Context, id int64) (*model.MessageResponse, error)
	ListFlat(ctx context.Context) ([]model.Group, error)
	CreateFlat(ctx context.Context, req *model.CreateGroupRequest) (*model.CreatedResponse, error)
}

// CameraGroupHandler serves both /camera-groups and the flat /groups view
// of the same table.
type CameraGroupHandler struct {
	Handler
	groups cameraGroupService
}

func NewCameraGroupHandler(s *server.Server, groups cameraGroupService) *CameraGroupHandler {
	return &CameraGroupHandler{
		Handler: NewHandler(s),
		groups:  groups,
	}
}

func (h *CameraGroupHandler) Get(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.groups.Get(c.Request().Context(), req.ID)
	}
	return h.groups.List(c.Request().Context())
}

func (h *CameraGroupHandler) Create(c echo.Context, req *model.CreateCameraGroupRequest) (*model.CreatedResponse, error) {
	return h.groups.Create(c.Request().Context(), req)
}

func (h *CameraGroupHandler) Update(c echo.Context, req *model.UpdateCameraGroupRequest) (*model.MessageResponse, error) {
	return h.groups.Update(c.Request().Context(), req)
}

func (h *CameraGroupHandler) Delete(c echo.Context, req *model.IDRequest) (*model.MessageResponse, error) {
	return h.groups.Delete(c.Request().Context(), req.ID)
}

func (h *CameraGroupHandler) ListFlat(c echo.Context, _ *NoParams) ([]model.Group, error) {
	return h.groups.ListFlat(c.Request().Context())
}

func (h *CameraGroupHandler) CreateFlat(c echo.Context, req *model.CreateGroupRequest) (*model.CreatedResponse, error) {
	return h.groups.CreateFlat(c.Request().Context(), req)
}
