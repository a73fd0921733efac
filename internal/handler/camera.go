package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type cameraService interface {
	List(ctx context.Context, filter *model.CameraFilter) ([]model.Camera, error)
	Get(ctx context.Context, id int64) (*model.Camera, error)
	Create(ctx context.Context, req *model.CreateCameraRequest) (*model.Camera, error)
	Update(ctx context.Context, req *model.UpdateCameraRequest) (*model.Camera, error)
	Delete(ctx context.Context, id int64) (*model.MessageResponse, error)

	ListRegistry(ctx context.Context) ([]model.RegistryCamera, error)
	GetRegistry(ctx context.Context, id int64) (*model.RegistryCamera, error)
	CreateRegistry(ctx context.Context, req *model.CreateRegistryCameraRequest) (*model.CreatedResponse, error)
	UpdateRegistry(ctx context.Context, req *model.UpdateRegistryCameraRequest) (*model.SuccessResponse, error)
	DeleteRegistry(ctx context.Context, id int64) (*model.SuccessResponse, error)

	Stats(ctx context.Context) (*model.CameraStats, error)
}

// CameraHandler serves /cameras, /camera-registry and /cameras-stats,
// three projections of the cameras table.
type CameraHandler struct {
	Handler
	cameras cameraService
}

func NewCameraHandler(s *server.Server, cameras cameraService) *CameraHandler {
	return &CameraHandler{
		Handler: NewHandler(s),
		cameras: cameras,
	}
}

func (h *CameraHandler) Get(c echo.Context, req *model.CameraFilter) (any, error) {
	if req.ID > 0 {
		return h.cameras.Get(c.Request().Context(), req.ID)
	}
	return h.cameras.List(c.Request().Context(), req)
}

func (h *CameraHandler) Create(c echo.Context, req *model.CreateCameraRequest) (*model.Camera, error) {
	return h.cameras.Create(c.Request().Context(), req)
}

func (h *CameraHandler) Update(c echo.Context, req *model.UpdateCameraRequest) (*model.Camera, error) {
	return h.cameras.Update(c.Request().Context(), req)
}

func (h *CameraHandler) Delete(c echo.Context, req *model.IDRequest) (*model.MessageResponse, error) {
	return h.cameras.Delete(c.Request().Context(), req.ID)
}

func (h *CameraHandler) GetRegistry(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.cameras.GetRegistry(c.Request().Context(), req.ID)
	}
	return h.cameras.ListRegistry(c.Request().Context())
}

func (h *CameraHandler) CreateRegistry(c echo.Context, req *model.CreateRegistryCameraRequest) (*model.CreatedResponse, error) {
	return h.cameras.CreateRegistry(c.Request().Context(), req)
}

func (h *CameraHandler) UpdateRegistry(c echo.Context, req *model.UpdateRegistryCameraRequest) (*model.SuccessResponse, error) {
	return h.cameras.UpdateRegistry(c.Request().Context(), req)
}

func (h *CameraHandler) DeleteRegistry(c echo.Context, req *model.IDRequest) (*model.SuccessResponse, error) {
	return h.cameras.DeleteRegistry(c.Request().Context(), req.ID)
}

func (h *CameraHandler) Stats(c echo.Context, _ *NoParams) (*model.CameraStats, error) {
	return h.cameras.Stats(c.Request().Context())
}
