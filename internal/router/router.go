// Package router builds the echo instance: global middleware, the system
// routes and one route group per API resource.
package router

import (
	"github.com/deppfellow/camfleet/internal/handler"
	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/labstack/echo/v4"
)

// NewRouter wires the middleware chain and registers every route. The
// returned echo instance serves both the HTTP server and the envelope
// adapter.
func NewRouter(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Auth.IdentifyUser,
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Metrics.Collect(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
	)

	registerSystemRoutes(router, h, m)
	registerAPIRoutes(router.Group("/api"), h, m)

	return router
}
