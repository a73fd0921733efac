// Package handler is the HTTP layer between the router and the services.
//
// It binds and validates requests through the validation package and
// calls the matching service.
package handler

import (
	"github.com/deppfellow/camfleet/internal/server"
	"github.com/deppfellow/camfleet/internal/service"
)

type Handlers struct {
	Health               *HealthHandler
	Auth                 *AuthHandler
	Sessions             *SessionHandler
	SystemUsers          *SystemUserHandler
	Roles                *RoleHandler
	UserGroups           *UserGroupHandler
	CameraOwners         *CameraOwnerHandler
	CameraGroups         *CameraGroupHandler
	Tags                 *TagHandler
	CameraModels         *CameraModelHandler
	TerritorialDivisions *TerritorialDivisionHandler
	Cameras              *CameraHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:               NewHealthHandler(s),
		Auth:                 NewAuthHandler(s, services.Auth),
		Sessions:             NewSessionHandler(s, services.Sessions),
		SystemUsers:          NewSystemUserHandler(s, services.SystemUsers),
		Roles:                NewRoleHandler(s, services.Roles),
		UserGroups:           NewUserGroupHandler(s, services.UserGroups),
		CameraOwners:         NewCameraOwnerHandler(s, services.CameraOwners),
		CameraGroups:         NewCameraGroupHandler(s, services.CameraGroups),
		Tags:                 NewTagHandler(s, services.Tags),
		CameraModels:         NewCameraModelHandler(s, services.CameraModels),
		TerritorialDivisions: NewTerritorialDivisionHandler(s, services.TerritorialDivisions),
		Cameras:              NewCameraHandler(s, services.Cameras),
	}
}
