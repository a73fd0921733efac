package handler

import (
	"context"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

type sessionService interface {
	List(ctx context.Context) ([]model.Session, error)
	Upsert(ctx context.Context, req *model.UpsertSessionRequest) (*model.UpsertSessionResponse, error)
	End(ctx context.Context, token string) (model.SuccessResponse, error)
}

type SessionHandler struct {
	Handler
	sessions sessionService
}

func NewSessionHandler(s *server.Server, sessions sessionService) *SessionHandler {
	return &SessionHandler{
		Handler:  NewHandler(s),
		sessions: sessions,
	}
}

func (h *SessionHandler) List(c echo.Context, _ *NoParams) ([]model.Session, error) {
	return h.sessions.List(c.Request().Context())
}

// Upsert records the caller's address and User-Agent when the body leaves
// them out.
func (h *SessionHandler) Upsert(c echo.Context, req *model.UpsertSessionRequest) (*model.UpsertSessionResponse, error) {
	if req.IPAddress == "" {
		req.IPAddress = c.RealIP()
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request().UserAgent()
	}
	return h.sessions.Upsert(c.Request().Context(), req)
}

func (h *SessionHandler) End(c echo.Context, req *model.EndSessionRequest) (model.SuccessResponse, error) {
	return h.sessions.End(c.Request().Context(), req.SessionToken)
}
