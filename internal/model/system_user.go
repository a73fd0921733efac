package model

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/camfleet/internal/validation"
)

type SystemUser struct {
	Base
	FullName        string          `json:"full_name"`
	Position        string          `json:"position"`
	Email           string          `json:"email"`
	Login           string          `json:"login"`
	Company         string          `json:"company"`
	RoleID          *int64          `json:"role_id"`
	RoleName        *string         `json:"role_name"`
	UserGroupID     *int64          `json:"user_group_id"`
	UserGroupName   *string         `json:"user_group_name"`
	CameraGroupID   *int64          `json:"camera_group_id"`
	CameraGroupName *string         `json:"camera_group_name"`
	WorkPhone       string          `json:"work_phone"`
	MobilePhone     string          `json:"mobile_phone"`
	Note            string          `json:"note"`
	AttachedFiles   json.RawMessage `json:"attached_files"`
	IsOnline        bool            `json:"is_online"`
	LastLogin       *time.Time      `json:"last_login"`
	PasswordHash    string          `json:"-"`
}

type CreateSystemUserRequest struct {
	FullName      string          `json:"full_name" validate:"required"`
	Position      string          `json:"position"`
	Email         string          `json:"email" validate:"required,email"`
	Login         string          `json:"login" validate:"required"`
	Password      string          `json:"password" validate:"required"`
	Company       string          `json:"company"`
	RoleID        *int64          `json:"role_id"`
	UserGroupID   *int64          `json:"user_group_id"`
	CameraGroupID *int64          `json:"camera_group_id"`
	WorkPhone     string          `json:"work_phone"`
	MobilePhone   string          `json:"mobile_phone"`
	Note          string          `json:"note"`
	AttachedFiles json.RawMessage `json:"attached_files"`
}

func (r *CreateSystemUserRequest) Validate() error {
	return validate(r)
}

type UpdateSystemUserRequest struct {
	ID            int64                     `query:"id" json:"-" validate:"required,gt=0"`
	FullName      Optional[string]          `json:"full_name,omitzero"`
	Position      Optional[string]          `json:"position,omitzero"`
	Email         Optional[string]          `json:"email,omitzero"`
	Login         Optional[string]          `json:"login,omitzero"`
	Company       Optional[string]          `json:"company,omitzero"`
	RoleID        Optional[int64]           `json:"role_id,omitzero"`
	UserGroupID   Optional[int64]           `json:"user_group_id,omitzero"`
	CameraGroupID Optional[int64]           `json:"camera_group_id,omitzero"`
	WorkPhone     Optional[string]          `json:"work_phone,omitzero"`
	MobilePhone   Optional[string]          `json:"mobile_phone,omitzero"`
	Note          Optional[string]          `json:"note,omitzero"`
	AttachedFiles Optional[json.RawMessage] `json:"attached_files,omitzero"`
	IsOnline      Optional[bool]            `json:"is_online,omitzero"`
	Password      Optional[string]          `json:"password,omitzero"`
}

func (r *UpdateSystemUserRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if email, ok := r.Email.Get(); ok {
		if err := validation.Validator().Var(email, "email"); err != nil {
			return validation.CustomValidationErrors{{Field: "email", Message: "must be a valid email address"}}
		}
	}
	return firstError(
		requireNonEmpty("full_name", r.FullName),
		requireNonEmpty("email", r.Email),
		requireNonEmpty("login", r.Login),
	)
}

// AuthUser is the subset of a user returned on login.
type AuthUser struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Login         string `json:"login"`
	RoleID        *int64 `json:"role_id"`
	UserGroupID   *int64 `json:"user_group_id"`
	CameraGroupID *int64 `json:"camera_group_id"`
	Company       string `json:"company"`
	Position      string `json:"position"`
}

// AuthUserFrom trims a full user record down to the login payload.
func AuthUserFrom(u *SystemUser) AuthUser {
	return AuthUser{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Login:         u.Login,
		RoleID:        u.RoleID,
		UserGroupID:   u.UserGroupID,
		CameraGroupID: u.CameraGroupID,
		Company:       u.Company,
		Position:      u.Position,
	}
}
