package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error

	// Required checks turn the overall status unhealthy when they fail.
	Required bool
}

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks []HealthCheck
}

// NewHealthHandler checks the database, which is required, and Redis when
// it is configured.
func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := []HealthCheck{{
		Name:     "database",
		Ping:     s.DB.Pool.Ping,
		Required: true,
	}}
	if s.Redis != nil {
		checks = append(checks, HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}
	return NewHealthHandlerWithChecks(s, checks...)
}

func NewHealthHandlerWithChecks(s *server.Server, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

// CheckHealth returns 200 when every required check passes and 503
// otherwise. Optional failures are reported but do not change the status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		checkStart := time.Now()
		err := check.Ping(ctx)
		cancel()

		if err != nil {
			// The raw error stays in the logs.
			checks[check.Name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": time.Since(checkStart).String(),
			}
			if check.Required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Dur("response_time", time.Since(checkStart)).
				Msgf("%s health check failed", check.Name)

			h.recordFailure(check.Name, time.Since(checkStart), err)
			continue
		}

		checks[check.Name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
