// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// CORS, session identification, request logging, login rate limiting,
// metrics, tracing and panic recovery.
package middleware
