// Package model holds the entities returned by the API and the request
// payloads it accepts.
package model

import "time"

type BaseWithID struct {
	ID int64 `json:"id"`
}

type BaseWithCreatedAt struct {
	CreatedAt time.Time `json:"created_at"`
}

type BaseWithUpdatedAt struct {
	UpdatedAt time.Time `json:"updated_at"`
}

// Base is embedded by every table-backed entity.
type Base struct {
	BaseWithID
	BaseWithCreatedAt
	BaseWithUpdatedAt
}

// IDQuery selects between a list and a point lookup on GET.
type IDQuery struct {
	ID int64 `query:"id" json:"id" validate:"gte=0"`
}

func (q *IDQuery) Validate() error {
	return validate(q)
}

// IDRequest carries a mandatory id from the query or the body.
type IDRequest struct {
	ID int64 `query:"id" json:"id" validate:"required,gt=0"`
}

func (r *IDRequest) Validate() error {
	return validate(r)
}

// CreatedResponse is returned by POSTs that only report the new id.
type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse is the `{"success": true}` body, optionally echoing the id.
type SuccessResponse struct {
	Success bool   `json:"success"`
	ID      *int64 `json:"id,omitempty"`
}

// MessageResponse is the `{"message": ...}` body.
type MessageResponse struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

// Success builds a SuccessResponse; pass an id to echo it back.
func Success(id ...int64) SuccessResponse {
	resp := SuccessResponse{Success: true}
	if len(id) > 0 {
		resp.ID = &id[0]
	}
	return resp
}
