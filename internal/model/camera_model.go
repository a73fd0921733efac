package model

type CameraModel struct {
	Base
	Manufacturer string `json:"manufacturer"`
	ModelName    string `json:"model_name"`
	Description  string `json:"description"`
	SupportsPTZ  bool   `json:"supports_ptz"`
}

type CreateCameraModelRequest struct {
	Manufacturer string `json:"manufacturer" validate:"required"`
	ModelName    string `json:"model_name" validate:"required"`
	Description  string `json:"description"`
	SupportsPTZ  bool   `json:"supports_ptz"`
}

func (r *CreateCameraModelRequest) Validate() error {
	return validate(r)
}

type UpdateCameraModelRequest struct {
	ID           int64            `query:"id" json:"id" validate:"required,gt=0"`
	Manufacturer Optional[string] `json:"manufacturer,omitzero"`
	ModelName    Optional[string] `json:"model_name,omitzero"`
	Description  Optional[string] `json:"description,omitzero"`
	SupportsPTZ  Optional[bool]   `json:"supports_ptz,omitzero"`
}

func (r *UpdateCameraModelRequest) Validate() error {
	return firstError(
		validate(r),
		requireNonEmpty("manufacturer", r.Manufacturer),
		requireNonEmpty("model_name", r.ModelName),
	)
}
