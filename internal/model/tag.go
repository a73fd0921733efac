package model

import "time"

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#3b82f6"

type Tag struct {
	BaseWithID
	Name          string    `json:"name"`
	TagGroupID    *int64    `json:"tag_group_id"`
	Color         string    `json:"color"`
	Description   string    `json:"description"`
	TagGroupName  *string   `json:"tag_group_name"`
	TagGroupColor *string   `json:"tag_group_color"`
	CameraCount   int64     `json:"camera_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required"`
	TagGroupID  *int64 `json:"tag_group_id"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (r *CreateTagRequest) Validate() error {
	if r.Color == "" {
		r.Color = DefaultTagColor
	}
	return validate(r)
}
