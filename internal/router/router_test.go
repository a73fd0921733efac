package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/deppfellow/camfleet/internal/handler"
	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter registers every route with no services behind them, so
// only requests that never reach a service can be served.
func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{}
	cfg.Primary.Env = "test"
	cfg.Server.CORSAllowedOrigins = []string{"*"}
	s := &server.Server{Config: cfg, Logger: &logger}

	h := &handler.Handlers{
		Health: handler.NewHealthHandlerWithChecks(s, handler.HealthCheck{
			Name:     "database",
			Required: true,
			Ping:     func(context.Context) error { return nil },
		}),
		Auth:                 handler.NewAuthHandler(s, nil),
		Sessions:             handler.NewSessionHandler(s, nil),
		SystemUsers:          handler.NewSystemUserHandler(s, nil),
		Roles:                handler.NewRoleHandler(s, nil),
		UserGroups:           handler.NewUserGroupHandler(s, nil),
		CameraOwners:         handler.NewCameraOwnerHandler(s, nil),
		CameraGroups:         handler.NewCameraGroupHandler(s, nil),
		Tags:                 handler.NewTagHandler(s, nil),
		CameraModels:         handler.NewCameraModelHandler(s, nil),
		TerritorialDivisions: handler.NewTerritorialDivisionHandler(s, nil),
		Cameras:              handler.NewCameraHandler(s, nil),
	}

	return NewRouter(h, middleware.NewMiddlewares(s, nil))
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPreflightPerResource(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		path    string
		methods string
		headers string
	}{
		{"/api/auth", "POST, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/sessions", "GET, POST, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token, X-Session-Token"},
		{"/api/system-users", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/roles", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/user-groups", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/camera-owners", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/camera-groups", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/groups", "GET, POST, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/tags", "GET, POST, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/models", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/territorial-divisions", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/camera-registry", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/cameras", "GET, POST, PUT, DELETE, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
		{"/api/cameras-stats", "GET, OPTIONS", "Content-Type, X-User-Id, X-Auth-Token"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(e, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Body.String())
			assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			assert.Equal(t, tt.methods, rec.Header().Get(echo.HeaderAccessControlAllowMethods))
			assert.Equal(t, tt.headers, rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
			assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
		})
	}
}

func TestPreflightIgnoresBody(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodOptions, "/api/roles?id=x", "{not json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
}

func TestUnsupportedMethods(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth"},
		{http.MethodPut, "/api/sessions"},
		{http.MethodDelete, "/api/tags"},
		{http.MethodPut, "/api/groups"},
		{http.MethodPost, "/api/cameras-stats"},
		{http.MethodPatch, "/api/cameras"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(e, tt.method, tt.path, "")

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Method not allowed", body["error"])
		})
	}
}

func TestValidationRunsBeforeServices(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodPost, "/api/auth", `{"login":"  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "login and password are required", body["error"])
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/api/satellites", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	serve(e, http.MethodOptions, "/api/tags", "")
	rec = serve(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `camfleet_http_requests_total{method="OPTIONS",route="/api/tags",status="200"}`)
}
