package model

import "github.com/deppfellow/camfleet/internal/validation"

// DefaultDivisionColor is the UI color class given to new divisions.
const DefaultDivisionColor = "bg-blue-500"

type TerritorialDivision struct {
	Base
	Name        string `json:"name"`
	CameraCount int64  `json:"camera_count"`
	ParentID    *int64 `json:"parent_id"`
	Color       string `json:"color"`
}

type CreateTerritorialDivisionRequest struct {
	Name        string `json:"name" validate:"required"`
	CameraCount int64  `json:"camera_count" validate:"gte=0"`
	ParentID    *int64 `json:"parent_id"`
	Color       string `json:"color"`
}

func (r *CreateTerritorialDivisionRequest) Validate() error {
	if r.Color == "" {
		r.Color = DefaultDivisionColor
	}
	return validate(r)
}

type UpdateTerritorialDivisionRequest struct {
	ID          int64            `query:"id" json:"id" validate:"required,gt=0"`
	Name        Optional[string] `json:"name,omitzero"`
	CameraCount Optional[int64]  `json:"camera_count,omitzero"`
	ParentID    Optional[int64]  `json:"parent_id,omitzero"`
	Color       Optional[string] `json:"color,omitzero"`
}

func (r *UpdateTerritorialDivisionRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if v, ok := r.CameraCount.Get(); ok && v < 0 {
		return validation.CustomValidationErrors{{Field: "camera_count", Message: "must be at least 0"}}
	}
	if v, ok := r.ParentID.Get(); ok && v == r.ID {
		return selfParentError()
	}
	return requireNonEmpty("name", r.Name)
}
