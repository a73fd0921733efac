package router

import (
	"net/http"
	"slices"

	"github.com/deppfellow/camfleet/internal/handler"
	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/labstack/echo/v4"
)

type route struct {
	method     string
	handler    echo.HandlerFunc
	middleware []echo.MiddlewareFunc
}

// resource registers routes on path together with the OPTIONS route that
// advertises them. Methods without a route answer 405.
func resource(g *echo.Group, path string, headers []string, routes ...route) {
	methods := make([]string, 0, len(routes))
	for _, rt := range routes {
		g.Add(rt.method, path, rt.handler, rt.middleware...)
		methods = append(methods, rt.method)
	}
	g.OPTIONS(path, handler.Preflight(methods, headers))
}

func registerAPIRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	headers := handler.DefaultAllowHeaders
	sessionHeaders := append(slices.Clone(headers), middleware.HeaderSessionToken)

	resource(g, "/auth", headers,
		route{
			method:     http.MethodPost,
			handler:    handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK),
			middleware: []echo.MiddlewareFunc{m.RateLimit.LimitLogin()},
		},
	)

	sessions := h.Sessions
	resource(g, "/sessions", sessionHeaders,
		route{method: http.MethodGet, handler: handler.Handle(sessions.Handler, sessions.List, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(sessions.Handler, sessions.Upsert, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(sessions.Handler, sessions.End, http.StatusOK)},
	)

	users := h.SystemUsers
	resource(g, "/system-users", headers,
		route{method: http.MethodGet, handler: handler.Handle(users.Handler, users.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(users.Handler, users.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(users.Handler, users.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(users.Handler, users.Delete, http.StatusOK)},
	)

	roles := h.Roles
	resource(g, "/roles", headers,
		route{method: http.MethodGet, handler: handler.Handle(roles.Handler, roles.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(roles.Handler, roles.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(roles.Handler, roles.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(roles.Handler, roles.Delete, http.StatusOK)},
	)

	userGroups := h.UserGroups
	resource(g, "/user-groups", headers,
		route{method: http.MethodGet, handler: handler.Handle(userGroups.Handler, userGroups.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(userGroups.Handler, userGroups.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(userGroups.Handler, userGroups.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(userGroups.Handler, userGroups.Delete, http.StatusOK)},
	)

	owners := h.CameraOwners
	resource(g, "/camera-owners", headers,
		route{method: http.MethodGet, handler: handler.Handle(owners.Handler, owners.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(owners.Handler, owners.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(owners.Handler, owners.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(owners.Handler, owners.Delete, http.StatusOK)},
	)

	cameraGroups := h.CameraGroups
	resource(g, "/camera-groups", headers,
		route{method: http.MethodGet, handler: handler.Handle(cameraGroups.Handler, cameraGroups.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(cameraGroups.Handler, cameraGroups.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(cameraGroups.Handler, cameraGroups.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(cameraGroups.Handler, cameraGroups.Delete, http.StatusOK)},
	)
	resource(g, "/groups", headers,
		route{method: http.MethodGet, handler: handler.Handle(cameraGroups.Handler, cameraGroups.ListFlat, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(cameraGroups.Handler, cameraGroups.CreateFlat, http.StatusCreated)},
	)

	tags := h.Tags
	resource(g, "/tags", headers,
		route{method: http.MethodGet, handler: handler.Handle(tags.Handler, tags.List, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(tags.Handler, tags.Create, http.StatusCreated)},
	)

	models := h.CameraModels
	resource(g, "/models", headers,
		route{method: http.MethodGet, handler: handler.Handle(models.Handler, models.List, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(models.Handler, models.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(models.Handler, models.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(models.Handler, models.Delete, http.StatusOK)},
	)

	divisions := h.TerritorialDivisions
	resource(g, "/territorial-divisions", headers,
		route{method: http.MethodGet, handler: handler.Handle(divisions.Handler, divisions.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(divisions.Handler, divisions.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(divisions.Handler, divisions.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(divisions.Handler, divisions.Delete, http.StatusOK)},
	)

	cameras := h.Cameras
	resource(g, "/camera-registry", headers,
		route{method: http.MethodGet, handler: handler.Handle(cameras.Handler, cameras.GetRegistry, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(cameras.Handler, cameras.CreateRegistry, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(cameras.Handler, cameras.UpdateRegistry, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(cameras.Handler, cameras.DeleteRegistry, http.StatusOK)},
	)
	resource(g, "/cameras", headers,
		route{method: http.MethodGet, handler: handler.Handle(cameras.Handler, cameras.Get, http.StatusOK)},
		route{method: http.MethodPost, handler: handler.Handle(cameras.Handler, cameras.Create, http.StatusCreated)},
		route{method: http.MethodPut, handler: handler.Handle(cameras.Handler, cameras.Update, http.StatusOK)},
		route{method: http.MethodDelete, handler: handler.Handle(cameras.Handler, cameras.Delete, http.StatusOK)},
	)
	resource(g, "/cameras-stats", headers,
		route{method: http.MethodGet, handler: handler.Handle(cameras.Handler, cameras.Stats, http.StatusOK)},
	)
}
