package errs

import (
	"fmt"
	"net/http"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// Parameters:
//   - message: text to send to client
//   - override: whether the message can be shown to the client verbatim.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnauthorized)),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	// If caller supplies custom code pointer, use it as-is.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewConflictError creates the error returned when dependent rows block a
// delete. The API contract reports it as 400, not 409.
//
// entity is used to build the code, e.g. "role" -> "ROLE_HAS_DEPENDENTS".
func NewConflictError(message, entity string) *HTTPError {
	code := MakeUpperCaseWithUnderscores(entity) + "_HAS_DEPENDENTS"

	return &HTTPError{
		Code:     code,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: true,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports optional custom code override similar to NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewMethodNotAllowedError creates a 405 for methods a resource does not serve.
func NewMethodNotAllowedError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusMethodNotAllowed)),
		Message:  "Method not allowed",
		Status:   http.StatusMethodNotAllowed,
		Override: true,
	}
}

// NewTooManyRequestsError creates a 429 returned by the login rate limiter.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
// The real cause is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError creates the 400 for failed payload validation. The
// first field error becomes the message, e.g. "name is required".
func ValidationError(fields []FieldError) *HTTPError {
	if len(fields) == 0 {
		return NewBadRequestError("Validation failed", true, nil, nil)
	}

	first := fields[0]
	return NewBadRequestError(fmt.Sprintf("%s %s", first.Field, first.Error), true, nil, fields)
}
