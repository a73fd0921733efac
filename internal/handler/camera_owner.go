package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type cameraOwnerService interface {
	List(ctx context.Context) ([]model.CameraOwner, error)
	Get(ctx context.Context, id int64) (*model.CameraOwner, error)
	Create(ctx context.Context, req *model.CreateCameraOwnerRequest) (*model.CameraOwner, error)
	Update(ctx context.Context, req *model.UpdateCameraOwnerRequest) (*model.CameraOwner, error)
	Delete(ctx context.Context, id int64) (*model.SuccessResponse, error)
}

type CameraOwnerHandler struct {
	Handler
	owners cameraOwnerService
}

func NewCameraOwnerHandler(s *server.Server, owners cameraOwnerService) *CameraOwnerHandler {
	return &CameraOwnerHandler{
		Handler: NewHandler(s),
		owners:  owners,
	}
}

func (h *CameraOwnerHandler) Get(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.owners.Get(c.Request().Context(), req.ID)
	}
	return h.owners.List(c.Request().Context())
}

func (h *CameraOwnerHandler) Create(c echo.Context, req *model.CreateCameraOwnerRequest) (*model.CameraOwner, error) {
	return h.owners.Create(c.Request().Context(), req)
}

func (h *CameraOwnerHandler) Update(c echo.Context, req *model.UpdateCameraOwnerRequest) (*model.CameraOwner, error) {
	return h.owners.Update(c.Request().Context(), req)
}

func (h *CameraOwnerHandler) Delete(c echo.Context, req *model.IDRequest) (*model.SuccessResponse, error) {
	return h.owners.Delete(c.Request().Context(), req.ID)
}
