package model

import (
	"strings"

	"github.com/deppfellow/camfleet/internal/errs"
)

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Validate trims both credentials; either one missing is a single error.
func (r *LoginRequest) Validate() error {
	r.Login = strings.TrimSpace(r.Login)
	r.Password = strings.TrimSpace(r.Password)

	if r.Login == "" || r.Password == "" {
		return errs.NewBadRequestError("login and password are required", true, nil, nil)
	}
	return nil
}

type LoginResponse struct {
	Success bool     `json:"success"`
	User    AuthUser `json:"user"`
}
