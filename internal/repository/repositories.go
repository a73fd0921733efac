// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Repositories hold no connection of their own. Every method takes the
// DBTX it should run on, which is the request transaction opened by the
// service layer.
package repository

import "github.com/rs/zerolog"

// Repositories is a container for all repository instances.
type Repositories struct {
	Roles                *RoleRepository
	UserGroups           *UserGroupRepository
	CameraOwners         *CameraOwnerRepository
	CameraGroups         *CameraGroupRepository
	Tags                 *TagRepository
	CameraModels         *CameraModelRepository
	TerritorialDivisions *TerritorialDivisionRepository
	Cameras              *CameraRepository
	SystemUsers          *SystemUserRepository
	Sessions             *SessionRepository
}

// NewRepositories constructs the repository container.
func NewRepositories(logger *zerolog.Logger) *Repositories {
	return &Repositories{
		Roles:                &RoleRepository{},
		UserGroups:           &UserGroupRepository{},
		CameraOwners:         &CameraOwnerRepository{},
		CameraGroups:         &CameraGroupRepository{},
		Tags:                 &TagRepository{},
		CameraModels:         &CameraModelRepository{},
		TerritorialDivisions: &TerritorialDivisionRepository{},
		Cameras:              &CameraRepository{},
		SystemUsers:          &SystemUserRepository{},
		Sessions:             &SessionRepository{logger: logger},
	}
}
