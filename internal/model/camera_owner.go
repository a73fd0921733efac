package model

type CameraOwner struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id"`
}

type CreateCameraOwnerRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id"`
}

func (r *CreateCameraOwnerRequest) Validate() error {
	return validate(r)
}

type UpdateCameraOwnerRequest struct {
	ID          int64            `query:"id" json:"id" validate:"required,gt=0"`
	Name        string           `json:"name" validate:"required"`
	Description Optional[string] `json:"description,omitzero"`
	ParentID    Optional[int64]  `json:"parent_id,omitzero"`
}

func (r *UpdateCameraOwnerRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if v, ok := r.ParentID.Get(); ok && v == r.ID {
		return selfParentError()
	}
	return nil
}
