package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	cfg := &config.Config{}
	cfg.Primary.Env = "test"
	return &server.Server{Config: cfg, Logger: &logger}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

type roleServiceMock struct {
	mock.Mock
}

func (m *roleServiceMock) List(ctx context.Context) ([]model.Role, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Role), args.Error(1)
}

func (m *roleServiceMock) Get(ctx context.Context, id int64) (*model.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*model.Role)
	return role, args.Error(1)
}

func (m *roleServiceMock) Create(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	args := m.Called(ctx, req)
	role, _ := args.Get(0).(*model.Role)
	return role, args.Error(1)
}

func (m *roleServiceMock) Update(ctx context.Context, req *model.UpdateRoleRequest) (*model.Role, error) {
	args := m.Called(ctx, req)
	role, _ := args.Get(0).(*model.Role)
	return role, args.Error(1)
}

func (m *roleServiceMock) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*model.MessageResponse)
	return resp, args.Error(1)
}

func roleRoutes(s *server.Server, roles roleService) *echo.Echo {
	h := NewRoleHandler(s, roles)
	e := newTestEcho(s)
	e.GET("/api/roles", Handle(h.Handler, h.Get, http.StatusOK))
	e.POST("/api/roles", Handle(h.Handler, h.Create, http.StatusCreated))
	e.PUT("/api/roles", Handle(h.Handler, h.Update, http.StatusOK))
	e.DELETE("/api/roles", Handle(h.Handler, h.Delete, http.StatusOK))
	return e
}

func TestRoleHandler_GetSwitchesOnID(t *testing.T) {
	roles := new(roleServiceMock)
	roles.On("List", mock.Anything).Return([]model.Role{{Name: "operator"}, {Name: "admin"}}, nil).Once()
	roles.On("Get", mock.Anything, int64(3)).Return(&model.Role{Name: "auditor", UsersCount: 2}, nil).Once()
	roles.On("Get", mock.Anything, int64(99)).Return(nil, errs.NewNotFoundError("Role not found", true, nil)).Once()

	e := roleRoutes(testServer(), roles)

	rec := do(e, http.MethodGet, "/api/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	rec = do(e, http.MethodGet, "/api/roles?id=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auditor", decode(t, rec)["name"])

	rec = do(e, http.MethodGet, "/api/roles?id=99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Role not found", decode(t, rec)["error"])

	roles.AssertExpectations(t)
}

func TestRoleHandler_InvalidInput(t *testing.T) {
	roles := new(roleServiceMock)
	e := roleRoutes(testServer(), roles)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   string
	}{
		{"non-numeric id", http.MethodGet, "/api/roles?id=abc", "", ""},
		{"missing name", http.MethodPost, "/api/roles", `{"description":"x"}`, "name is required"},
		{"malformed json", http.MethodPost, "/api/roles", `{"name":`, ""},
		{"put without id", http.MethodPut, "/api/roles", `{"name":"x"}`, "id is required"},
		{"delete without id", http.MethodDelete, "/api/roles", "", "id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode(t, rec)
			assert.NotEmpty(t, body["error"])
			if tt.want != "" {
				assert.Equal(t, tt.want, body["error"])
			}
		})
	}

	roles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	roles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	roles.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRoleHandler_CreateUpdateDelete(t *testing.T) {
	roles := new(roleServiceMock)
	roles.On("Create", mock.Anything, mock.MatchedBy(func(r *model.CreateRoleRequest) bool {
		return r.Name == "operator"
	})).Return(&model.Role{Name: "operator"}, nil)
	roles.On("Update", mock.Anything, mock.MatchedBy(func(r *model.UpdateRoleRequest) bool {
		desc, ok := r.Description.Get()
		return r.ID == 4 && !r.Name.Set && ok && desc == "night shift"
	})).Return(&model.Role{Name: "operator", Description: "night shift"}, nil)
	roles.On("Delete", mock.Anything, int64(4)).
		Return(nil, errs.NewConflictError("Cannot delete role with 2 assigned users", "role")).Once()

	e := roleRoutes(testServer(), roles)

	rec := do(e, http.MethodPost, "/api/roles", `{"name":"operator"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPut, "/api/roles?id=4", `{"description":"night shift"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "night shift", decode(t, rec)["description"])

	rec = do(e, http.MethodDelete, "/api/roles?id=4", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Cannot delete role with 2 assigned users", body["error"])
	assert.Equal(t, "ROLE_HAS_DEPENDENTS", body["code"])

	roles.AssertExpectations(t)
}

func TestHandle_FreshRequestPerCall(t *testing.T) {
	roles := new(roleServiceMock)
	var seen []*model.UpdateRoleRequest
	roles.On("Update", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { seen = append(seen, args.Get(1).(*model.UpdateRoleRequest)) }).
		Return(&model.Role{}, nil)

	e := roleRoutes(testServer(), roles)
	do(e, http.MethodPut, "/api/roles?id=1", `{"name":"first"}`)
	do(e, http.MethodPut, "/api/roles?id=2", `{"description":"second"}`)

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
	assert.False(t, seen[1].Name.Set)
}

func TestHandle_InternalErrorIsHidden(t *testing.T) {
	roles := new(roleServiceMock)
	roles.On("List", mock.Anything).Return([]model.Role(nil), errors.New("pq: relation \"roles\" does not exist"))

	rec := do(roleRoutes(testServer(), roles), http.MethodGet, "/api/roles", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decode(t, rec)["error"])
	assert.NotContains(t, rec.Body.String(), "relation")
}

type sessionServiceMock struct {
	mock.Mock
}

func (m *sessionServiceMock) List(ctx context.Context) ([]model.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Session), args.Error(1)
}

func (m *sessionServiceMock) Upsert(ctx context.Context, req *model.UpsertSessionRequest) (*model.UpsertSessionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*model.UpsertSessionResponse)
	return resp, args.Error(1)
}

func (m *sessionServiceMock) End(ctx context.Context, token string) (model.SuccessResponse, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.SuccessResponse), args.Error(1)
}

func TestSessionHandler(t *testing.T) {
	sessions := new(sessionServiceMock)
	sessions.On("Upsert", mock.Anything, mock.MatchedBy(func(r *model.UpsertSessionRequest) bool {
		return r.UserID == 5 && r.SessionToken == "tok" && r.CurrentRoute == "/"
	})).Return(&model.UpsertSessionResponse{Success: true, SessionID: 11}, nil)
	sessions.On("End", mock.Anything, "tok").Return(model.Success(), nil)

	s := testServer()
	h := NewSessionHandler(s, sessions)
	e := newTestEcho(s)
	e.POST("/api/sessions", Handle(h.Handler, h.Upsert, http.StatusOK))
	e.DELETE("/api/sessions", Handle(h.Handler, h.End, http.StatusOK))

	rec := do(e, http.MethodPost, "/api/sessions", `{"user_id":5,"session_token":"tok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 11.0, body["session_id"])

	rec = do(e, http.MethodPost, "/api/sessions", `{"user_id":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "session_token is required", decode(t, rec)["error"])

	rec = do(e, http.MethodDelete, "/api/sessions?session_token=tok", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decode(t, rec))

	sessions.AssertExpectations(t)
}

func TestPreflight(t *testing.T) {
	s := testServer()
	e := newTestEcho(s)
	e.OPTIONS("/api/tags", Preflight([]string{http.MethodGet, http.MethodPost}, DefaultAllowHeaders))

	for _, body := range []string{"", "{not json", `{"name":""}`} {
		rec := do(e, http.MethodOptions, "/api/tags?id=abc", body)

		assert.Equal(t, http.StatusOK, rec.Code, body)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		assert.Equal(t, "Content-Type, X-User-Id, X-Auth-Token", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
		assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
	}
}

func TestHealthHandler(t *testing.T) {
	s := testServer()

	tests := []struct {
		name       string
		checks     []HealthCheck
		wantStatus int
		wantState  string
	}{
		{
			name:       "all healthy",
			checks:     []HealthCheck{{Name: "database", Required: true, Ping: func(context.Context) error { return nil }}},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:       "database down",
			checks:     []HealthCheck{{Name: "database", Required: true, Ping: func(context.Context) error { return errors.New("refused") }}},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
		{
			name: "optional redis down",
			checks: []HealthCheck{
				{Name: "database", Required: true, Ping: func(context.Context) error { return nil }},
				{Name: "redis", Ping: func(context.Context) error { return errors.New("refused") }},
			},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(s)
			e.GET("/status", NewHealthHandlerWithChecks(s, tt.checks...).CheckHealth)

			rec := do(e, http.MethodGet, "/status", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.wantState, body["status"])
			assert.Equal(t, "test", body["environment"])
			assert.NotContains(t, rec.Body.String(), "refused")
		})
	}
}
