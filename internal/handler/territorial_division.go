package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type territorialDivisionService interface {
	List(ctx context.Context) ([]model.TerritorialDivision, error)
	Get(ctx context.Context, id int64) (*model.TerritorialDivision, error)
	Create(ctx context.Context, req *model.CreateTerritorialDivisionRequest) (*model.TerritorialDivision, error)
	Update(ctx context.Context, req *model.UpdateTerritorialDivisionRequest) (*model.TerritorialDivision, error)
	Delete(ctx context.Context, id int64) (*model.SuccessResponse, error)
}

type TerritorialDivisionHandler struct {
	Handler
	divisions territorialDivisionService
}

func NewTerritorialDivisionHandler(s *server.Server, divisions territorialDivisionService) *TerritorialDivisionHandler {
	return &TerritorialDivisionHandler{
		Handler:   NewHandler(s),
		divisions: divisions,
	}
}

func (h *TerritorialDivisionHandler) Get(c echo.Context, req *model.IDQuery) (any, error) {
	if req.ID > 0 {
		return h.divisions.Get(c.Request().Context(), req.ID)
	}
	return h.divisions.List(c.Request().Context())
}

func (h *TerritorialDivisionHandler) Create(c echo.Context, req *model.CreateTerritorialDivisionRequest) (*model.TerritorialDivision, error) {
	return h.divisions.Create(c.Request().Context(), req)
}

func (h *TerritorialDivisionHandler) Update(c echo.Context, req *model.UpdateTerritorialDivisionRequest) (*model.TerritorialDivision, error) {
	return h.divisions.Update(c.Request().Context(), req)
}

func (h *TerritorialDivisionHandler) Delete(c echo.Context, req *model.IDRequest) (*model.SuccessResponse, error) {
	return h.divisions.Delete(c.Request().Context(), req.ID)
}
