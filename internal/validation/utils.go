// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or minimum lengths) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,min=1"`)
// - Implement Validate() error that calls validation.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
//
// Field names in reported errors follow the `json` tag (falling back to
// `query`), so clients see "role_id" rather than "RoleID".
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// Struct validates a struct using the shared validator.
func Struct(v any) error {
	return Validator().Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) Query parameters are bound for every method (echo only does this for GET/DELETE/HEAD).
// 2) A non-empty JSON body is decoded on top of the query values.
// 3) payload.Validate() applies validation rules.
//
// Every failure is a 400 *errs.HTTPError. payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err, "Invalid query parameters"), true, nil, nil)
	}

	req := c.Request()
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return errs.NewBadRequestError("Unable to read request body", true, nil, nil)
		}
		_ = req.Body.Close()

		if len(bytes.TrimSpace(body)) > 0 {
			req.Body = io.NopCloser(bytes.NewReader(body))
			if err := c.Echo().JSONSerializer.Deserialize(c, payload); err != nil {
				return errs.NewBadRequestError(bindMessage(err, "Invalid JSON body"), true, nil, nil)
			}
		}
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	return nil
}

// bindMessage extracts the human part of an echo bind error.
func bindMessage(err error, fallback string) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return fallback
}

// validationError turns whatever Validate() returned into a 400.
//
// The first field error becomes the top-level message ("name is required").
func validationError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	fieldErrors := extractValidationError(err)
	if len(fieldErrors) == 0 {
		return errs.NewBadRequestError(err.Error(), true, nil, nil)
	}

	return errs.ValidationError(fieldErrors)
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, ce := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	// Convert validator.ValidationErrors into user-friendly messages.
	for _, fe := range validationErrors {
		field := fe.Field()
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min tag means:
			// - for strings: minimum length
			// - for numbers: minimum value
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", fe.Param())

		case "gte":
			msg = fmt.Sprintf("must be at least %s", fe.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "email":
			msg = "must be a valid email address"

		case "latitude", "longitude":
			msg = fmt.Sprintf("must be a valid %s", fe.Tag())

		case "hexcolor":
			msg = "must be a hex color"

		case "dive":
			msg = "some items are invalid"

		default:
			// Fallback for tags not explicitly handled above.
			if fe.Param() != "" {
				msg = fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("failed %s", fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors
}
