package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/labstack/echo/v4"
)

// Headers the front-end sends to identify itself.
const (
	HeaderUserID       = "X-User-Id"
	HeaderAuthToken    = "X-Auth-Token"
	HeaderSessionToken = "X-Session-Token"
)

// SessionResolver maps an active session token to its user.
type SessionResolver interface {
	UserIDByToken(ctx context.Context, token string) (int64, error)
}

// AuthMiddleware identifies the user behind a request. Identification is
// best effort: requests without a valid session continue anonymously.
type AuthMiddleware struct {
	server   *server.Server
	sessions SessionResolver
}

func NewAuthMiddleware(s *server.Server, sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{
		server:   s,
		sessions: sessions,
	}
}

// IdentifyUser sets UserIDKey from the session token, falling back to a
// numeric X-User-Id header. Preflight requests are not resolved.
func (auth *AuthMiddleware) IdentifyUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodOptions {
			return next(c)
		}
		if userID, ok := auth.resolve(c); ok {
			c.Set(UserIDKey, strconv.FormatInt(userID, 10))
		}
		return next(c)
	}
}

func (auth *AuthMiddleware) resolve(c echo.Context) (int64, bool) {
	header := c.Request().Header

	token := header.Get(HeaderSessionToken)
	if token == "" {
		token = header.Get(HeaderAuthToken)
	}

	if token != "" && auth.sessions != nil {
		userID, err := auth.sessions.UserIDByToken(c.Request().Context(), token)
		if err == nil {
			return userID, true
		}
		if !errors.Is(err, repository.ErrNotFound) {
			auth.server.Logger.Warn().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("could not resolve session token")
		}
	}

	if raw := header.Get(HeaderUserID); raw != "" {
		if userID, err := strconv.ParseInt(raw, 10, 64); err == nil && userID > 0 {
			return userID, true
		}
	}
	return 0, false
}
