package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type divisionPayload struct {
	ID       int64  `query:"id" json:"id"`
	Name     string `json:"name" validate:"required"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
	Color    string `json:"color" validate:"omitempty,min=3"`
}

func (p *divisionPayload) Validate() error {
	return Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "parent_id", Message: "must not reference itself"}}
}

func newContext(method, target, body string) echo.Context {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_QueryOnPut(t *testing.T) {
	c := newContext(http.MethodPut, "/api/territorial-divisions?id=42", `{"name":"North Sector"}`)

	var payload divisionPayload
	require.NoError(t, BindAndValidate(c, &payload))

	assert.Equal(t, int64(42), payload.ID)
	assert.Equal(t, "North Sector", payload.Name)
}

func TestBindAndValidate_BodyIDWins(t *testing.T) {
	c := newContext(http.MethodDelete, "/api/territorial-divisions?id=1", `{"id":7,"name":"x"}`)

	var payload divisionPayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, int64(7), payload.ID)
}

func TestBindAndValidate_RequiredFieldMessage(t *testing.T) {
	c := newContext(http.MethodPost, "/api/territorial-divisions", `{"color":"bg-red-500"}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &divisionPayload{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "name is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestBindAndValidate_EmptyBody(t *testing.T) {
	c := newContext(http.MethodPost, "/api/territorial-divisions", "")

	httpErr := requireHTTPError(t, BindAndValidate(c, &divisionPayload{}))
	assert.Equal(t, "name is required", httpErr.Message)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c := newContext(http.MethodPost, "/api/territorial-divisions", `{"name":`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &divisionPayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_WrongJSONType(t *testing.T) {
	c := newContext(http.MethodPost, "/api/territorial-divisions", `{"name": 12}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &divisionPayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_NonNumericID(t *testing.T) {
	c := newContext(http.MethodGet, "/api/territorial-divisions?id=abc", "")

	httpErr := requireHTTPError(t, BindAndValidate(c, &divisionPayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_MinMessage(t *testing.T) {
	c := newContext(http.MethodPost, "/api/territorial-divisions", `{"name":"n","color":"x"}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &divisionPayload{}))
	assert.Equal(t, "color must be at least 3 characters", httpErr.Message)
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	c := newContext(http.MethodPut, "/api/territorial-divisions", `{}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &customPayload{}))
	assert.Equal(t, "parent_id must not reference itself", httpErr.Message)
}

func TestBindAndValidate_HTTPErrorPassesThrough(t *testing.T) {
	c := newContext(http.MethodPost, "/api/auth", `{}`)

	httpErr := requireHTTPError(t, BindAndValidate(c, &loginLike{}))
	assert.Equal(t, "login and password are required", httpErr.Message)
}

type loginLike struct{}

func (l *loginLike) Validate() error {
	return errs.NewBadRequestError("login and password are required", true, nil, nil)
}
