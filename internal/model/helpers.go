package model

import "github.com/deppfellow/camfleet/internal/validation"

func validate(v any) error {
	return validation.Struct(v)
}

// requireNonEmpty reports a field that was sent as null or "".
func requireNonEmpty(field string, o Optional[string]) error {
	if o.Set && (o.Null || o.Value == "") {
		return validation.CustomValidationErrors{{Field: field, Message: "must not be empty"}}
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func selfParentError() error {
	return validation.CustomValidationErrors{{Field: "parent_id", Message: "must not reference itself"}}
}

func invalidStatusError() error {
	return validation.CustomValidationErrors{{Field: "status", Message: "must be one of: active inactive problem"}}
}
