package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/lib/password"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/deppfellow/camfleet/internal/server"
)

// WelcomeEnqueuer queues the welcome email for a new user.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, fullName, login string) error
}

type Services struct {
	Auth                 *AuthService
	Sessions             *SessionService
	SystemUsers          *SystemUserService
	Roles                *RoleService
	UserGroups           *UserGroupService
	CameraOwners         *CameraOwnerService
	CameraGroups         *CameraGroupService
	Tags                 *TagService
	CameraModels         *CameraModelService
	TerritorialDivisions *TerritorialDivisionService
	Cameras              *CameraService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	db := s.DB

	// Without Redis there is no queue and welcome emails are skipped.
	var welcome WelcomeEnqueuer
	if s.Job != nil && s.Config.Email.Enabled() {
		welcome = s.Job
	}

	return &Services{
		Auth:                 NewAuthService(db, repos.SystemUsers, s.Logger),
		Sessions:             NewSessionService(db, repos.Sessions, s.Config.Session.TTL),
		SystemUsers:          NewSystemUserService(db, repos.SystemUsers, password.NewHasher(s.Config.Auth.PasswordScheme), welcome, s.Logger),
		Roles:                NewRoleService(db, repos.Roles),
		UserGroups:           NewUserGroupService(db, repos.UserGroups),
		CameraOwners:         NewCameraOwnerService(db, repos.CameraOwners),
		CameraGroups:         NewCameraGroupService(db, repos.CameraGroups),
		Tags:                 NewTagService(db, repos.Tags),
		CameraModels:         NewCameraModelService(db, repos.CameraModels),
		TerritorialDivisions: NewTerritorialDivisionService(db, repos.TerritorialDivisions),
		Cameras:              NewCameraService(db, repos.Cameras),
	}, nil
}
