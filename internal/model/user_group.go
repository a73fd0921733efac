package model

type UserGroup struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id"`
	UserCount   int64  `json:"user_count"`
}

type CreateUserGroupRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parent_id"`
}

func (r *CreateUserGroupRequest) Validate() error {
	return validate(r)
}

type UpdateUserGroupRequest struct {
	ID          int64            `query:"id" json:"id" validate:"required,gt=0"`
	Name        string           `json:"name" validate:"required,min=1"`
	Description Optional[string] `json:"description,omitzero"`
	ParentID    Optional[int64]  `json:"parent_id,omitzero"`
	UserCount   Optional[int64]  `json:"user_count,omitzero"`
}

func (r *UpdateUserGroupRequest) Validate() error {
	if err := validate(r); err != nil {
		return err
	}
	if v, ok := r.ParentID.Get(); ok && v == r.ID {
		return selfParentError()
	}
	return nil
}
