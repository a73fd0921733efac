package model

import (
	"bytes"
	"encoding/json"
)

type Role struct {
	Base
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Permissions json.RawMessage `json:"permissions"`
	UsersCount  int64           `json:"users_count"`
}

type CreateRoleRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Permissions json.RawMessage `json:"permissions"`
}

func (r *CreateRoleRequest) Validate() error {
	return validate(r)
}

// PermissionsArg is nil when permissions were omitted or sent as null, so
// the insert falls back to an empty object.
func (r *CreateRoleRequest) PermissionsArg() any {
	if isJSONNull(r.Permissions) {
		return nil
	}
	return r.Permissions
}

type UpdateRoleRequest struct {
	ID          int64                     `query:"id" json:"id" validate:"required,gt=0"`
	Name        Optional[string]          `json:"name,omitzero"`
	Description Optional[string]          `json:"description,omitzero"`
	Permissions Optional[json.RawMessage] `json:"permissions,omitzero"`
}

func (r *UpdateRoleRequest) Validate() error {
	return firstError(validate(r), requireNonEmpty("name", r.Name))
}

// PermissionsValue is the stored value for a present permissions field.
// An explicit null resets the role to an empty object.
func (r *UpdateRoleRequest) PermissionsValue() Optional[json.RawMessage] {
	if r.Permissions.Set && (r.Permissions.Null || isJSONNull(r.Permissions.Value)) {
		return Some(json.RawMessage(`{}`))
	}
	return r.Permissions
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
