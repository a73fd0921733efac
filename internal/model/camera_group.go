package model

type CameraGroup struct {
	Base
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *int64  `json:"parent_id"`
	CameraIDs   []int64 `json:"camera_ids"`
	CameraCount int64   `json:"camera_count"`
}

type CreateCameraGroupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	ParentID    *int64  `json:"parent_id"`
	CameraIDs   []int64 `json:"camera_ids" validate:"dive,gt=0"`
}

func (r *CreateCameraGroupRequest) Validate() error {
	return validate(r)
}

type UpdateCameraGroupRequest struct {
	ID          int64             `query:"id" json:"id" validate:"required,gt=0"`
	Name        Optional[string]  `json:"name,omitzero"`
	Description Optional[string]  `json:"description,omitzero"`
	ParentID    Optional[int64]   `json:"parent_id,omitzero"`
	CameraIDs   Optional[[]int64] `json:"camera_ids,omitzero"`
}

func (r *UpdateCameraGroupRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if r.ParentID.Set && !r.ParentID.Null && r.ParentID.Value == r.ID {
		return selfParentError()
	}
	return requireNonEmpty("name", r.Name)
}

// Group is the flat view of camera groups served by /groups.
type Group struct {
	Base
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	ParentGroupID   *int64  `json:"parent_group_id"`
	ParentGroupName *string `json:"parent_group_name"`
	CameraCount     int64   `json:"camera_count"`
}

type CreateGroupRequest struct {
	Name          string `json:"name" validate:"required"`
	ParentGroupID *int64 `json:"parent_group_id"`
	Description   string `json:"description"`
}

func (r *CreateGroupRequest) Validate() error {
	return validate(r)
}
