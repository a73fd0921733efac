package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "CAMERA_OWNER", MakeUpperCaseWithUnderscores("camera-owner"))
	assert.Equal(t, "", MakeUpperCaseWithUnderscores(""))
}

func TestHTTPError_JSONShape(t *testing.T) {
	err := NewNotFoundError("Role not found", true, nil)

	body, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "Role not found", decoded["error"])
	assert.Equal(t, "NOT_FOUND", decoded["code"])
	assert.NotContains(t, decoded, "status")
	assert.NotContains(t, decoded, "fields")
}

func TestValidationError(t *testing.T) {
	err := ValidationError([]FieldError{
		{Field: "full_name", Error: "is required"},
		{Field: "email", Error: "must be a valid email address"},
	})

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "full_name is required", err.Error())
	assert.Len(t, err.Errors, 2)

	assert.Equal(t, "Validation failed", ValidationError(nil).Error())
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("Cannot delete role with 2 assigned users", "role")

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "ROLE_HAS_DEPENDENTS", err.Code)
	assert.True(t, err.Override)
}

func TestNewBadRequestError_CustomCode(t *testing.T) {
	code := "SYSTEM_USER_ALREADY_EXISTS"
	err := NewBadRequestError("exists", true, &code, nil)

	assert.Equal(t, code, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}

func TestStatusConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("invalid login or password", true), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"method", NewMethodNotAllowedError(), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"rate", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestHTTPError_IsAndWrap(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Camera not found", true, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestWithMessage_DoesNotMutate(t *testing.T) {
	base := NewNotFoundError("Resource not found", false, nil)
	custom := base.WithMessage("Division not found")

	assert.Equal(t, "Resource not found", base.Message)
	assert.Equal(t, "Division not found", custom.Message)
	assert.Equal(t, base.Status, custom.Status)
}
