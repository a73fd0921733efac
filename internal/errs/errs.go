// Package errs defines the error types returned to API clients.
//
// Every error that leaves a handler is converted into an *HTTPError so that
// the response body always has the same shape:
//
//	{ "error": "Role not found", "code": "NOT_FOUND" }
package errs
