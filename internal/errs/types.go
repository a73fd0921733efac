package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending input field.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized as the
// response body. The "error" key always carries the message:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "ROLE_HAS_DEPENDENTS").
//   - Message: human-friendly message, serialized as "error".
//   - Status: HTTP status code (not serialized, it is the response status).
//   - Override: whether the message is safe to show as-is. When false on a
//     5xx, the global error handler replaces it with the generic status text.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"error"`
	Status   int    `json:"-"`
	Override bool   `json:"-"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"fields,omitempty"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//	"camera-owners" -> "CAMERA_OWNERS"
func MakeUpperCaseWithUnderscores(str string) string {
	replacer := strings.NewReplacer(" ", "_", "-", "_")
	return strings.ToUpper(replacer.Replace(str))
}
