package handler

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/deppfellow/camfleet/internal/middleware"
	"github.com/labstack/echo/v4"
)

const preflightMaxAge = 24 * 60 * 60

// DefaultAllowHeaders are the request headers every resource accepts.
var DefaultAllowHeaders = []string{
	echo.HeaderContentType,
	middleware.HeaderUserID,
	middleware.HeaderAuthToken,
}

// Preflight answers OPTIONS for one resource with 200, an empty body and
// the resource's allowed methods and headers. The request is not bound or
// validated.
func Preflight(methods, headers []string) echo.HandlerFunc {
	allowMethods := strings.Join(slices.Concat(methods, []string{http.MethodOptions}), ", ")
	allowHeaders := strings.Join(headers, ", ")

	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set(echo.HeaderAccessControlAllowMethods, allowMethods)
		header.Set(echo.HeaderAccessControlAllowHeaders, allowHeaders)
		header.Set(echo.HeaderAccessControlMaxAge, strconv.Itoa(preflightMaxAge))
		return c.NoContent(http.StatusOK)
	}
}
