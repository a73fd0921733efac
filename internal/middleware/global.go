package middleware

import (
	"net/http"
	"slices"

	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/deppfellow/camfleet/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware that wraps every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS sets Access-Control-Allow-Origin on every response. Preflight
// requests are not answered here: each resource owns an OPTIONS route
// that publishes its own allowed methods and headers.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	origins := global.server.Config.Server.CORSAllowedOrigins
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()

			if wildcard {
				header.Set(echo.HeaderAccessControlAllowOrigin, "*")
				return next(c)
			}

			header.Add(echo.HeaderVary, echo.HeaderOrigin)
			if origin := c.Request().Header.Get(echo.HeaderOrigin); origin != "" && slices.Contains(origins, origin) {
				header.Set(echo.HeaderAccessControlAllowOrigin, origin)
			}
			return next(c)
		}
	}
}

// RequestLogger writes one "API" line per request, leveled by status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error, so v.Status can still read 200.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(c, v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}
			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler turns every returned error into the JSON error body.
// Errors that are not already an *errs.HTTPError are classified first:
// unmatched routes become 404, unsupported methods 405, and anything else
// goes through sqlerr. 5xx messages are replaced with the status text
// unless the error explicitly allows its message to be shown.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err
	httpErr := toHTTPError(err)

	if httpErr.Status >= http.StatusInternalServerError && !httpErr.Override {
		generic := httpErr.WithMessage(http.StatusText(httpErr.Status))
		generic.Code = errs.MakeUpperCaseWithUnderscores(http.StatusText(httpErr.Status))
		generic.Errors = nil
		httpErr = generic
	}

	logger := *GetLogger(c)
	event := logger.Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	}
	event.
		Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, httpErr)
}

func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound:
			return errs.NewNotFoundError("Route not found", true, nil)
		case http.StatusMethodNotAllowed:
			return errs.NewMethodNotAllowedError()
		}

		message := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}
		return &errs.HTTPError{
			Code:     errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message:  message,
			Status:   echoErr.Code,
			Override: echoErr.Code < http.StatusInternalServerError,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// statusOf returns the status the error handler will write for err, or
// the already written status when err is nil.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	return toHTTPError(err).Status
}
