package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type tagService interface {
	List(ctx context.Context) ([]model.Tag, error)
	Create(ctx context.Context, req *model.CreateTagRequest) (*model.CreatedResponse, error)
}

type TagHandler struct {
	Handler
	tags tagService
}

func NewTagHandler(s *server.Server, tags tagService) *TagHandler {
	return &TagHandler{
		Handler: NewHandler(s),
		tags:    tags,
	}
}

func (h *TagHandler) List(c echo.Context, _ *NoParams) ([]model.Tag, error) {
	return h.tags.List(c.Request().Context())
}

func (h *TagHandler) Create(c echo.Context, req *model.CreateTagRequest) (*model.CreatedResponse, error) {
	return h.tags.Create(c.Request().Context(), req)
}

type cameraModelService interface {
	List(ctx context.Context) ([]model.CameraModel, error)
	Create(ctx context.Context, req *model.CreateCameraModelRequest) (*model.CreatedResponse, error)
	Update(ctx context.Context, req *model.UpdateCameraModelRequest) (*model.SuccessResponse, error)
	Delete(ctx context.Context, id int64) (*model.SuccessResponse, error)
}

type CameraModelHandler struct {
	Handler
	models cameraModelService
}

func NewCameraModelHandler(s *server.Server, models cameraModelService) *CameraModelHandler {
	return &CameraModelHandler{
		Handler: NewHandler(s),
		models:  models,
	}
}

func (h *CameraModelHandler) List(c echo.Context, _ *NoParams) ([]model.CameraModel, error) {
	return h.models.List(c.Request().Context())
}

func (h *CameraModelHandler) Create(c echo.Context, req *model.CreateCameraModelRequest) (*model.CreatedResponse, error) {
	return h.models.Create(c.Request().Context(), req)
}

func (h *CameraModelHandler) Update(c echo.Context, req *model.UpdateCameraModelRequest) (*model.SuccessResponse, error) {
	return h.models.Update(c.Request().Context(), req)
}

func (h *CameraModelHandler) Delete(c echo.Context, req *model.IDRequest) (*model.SuccessResponse, error) {
	return h.models.Delete(c.Request().Context(), req.ID)
}
