package model

import "time"

type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	SessionToken string    `json:"session_token"`
	IPAddress    string    `json:"ip_address"`
	UserAgent    string    `json:"user_agent"`
	CurrentRoute string    `json:"current_route"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
	FullName     string    `json:"full_name"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`

	// Device is derived from UserAgent, not stored.
	Device string `json:"device" db:"-"`
}

type UpsertSessionRequest struct {
	UserID       int64  `json:"user_id" validate:"required,gt=0"`
	SessionToken string `json:"session_token" validate:"required"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
	CurrentRoute string `json:"current_route"`
}

func (r *UpsertSessionRequest) Validate() error {
	if r.CurrentRoute == "" {
		r.CurrentRoute = "/"
	}
	return validate(r)
}

type UpsertSessionResponse struct {
	Success   bool  `json:"success"`
	SessionID int64 `json:"session_id"`
}

type EndSessionRequest struct {
	SessionToken string `query:"session_token" json:"session_token" validate:"required"`
}

func (r *EndSessionRequest) Validate() error {
	return validate(r)
}
