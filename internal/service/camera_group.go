package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

const cameraGroupNotFound = "Camera group not found"

// CameraGroupService serves /camera-groups and the flat /groups view of
// the same table.
type CameraGroupService struct {
	db     TxRunner
	groups *repository.CameraGroupRepository
}

func NewCameraGroupService(db TxRunner, groups *repository.CameraGroupRepository) *CameraGroupService {
	return &CameraGroupService{db: db, groups: groups}
}

func (s *CameraGroupService) List(ctx context.Context) ([]model.CameraGroup, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.CameraGroup, error) {
		return s.groups.List(ctx, tx)
	})
}

func (s *CameraGroupService) Get(ctx context.Context, id int64) (*model.CameraGroup, error) {
	group, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.CameraGroup, error) {
		return s.groups.GetByID(ctx, tx, id)
	})
	return group, notFoundAs(err, cameraGroupNotFound)
}

// Create writes the group and its memberships in one transaction.
func (s *CameraGroupService) Create(ctx context.Context, req *model.CreateCameraGroupRequest) (*model.CreatedResponse, error) {
	id, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.groups.Create(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}
	return &model.CreatedResponse{ID: id, Message: "Camera group created"}, nil
}

func (s *CameraGroupService) Update(ctx context.Context, req *model.UpdateCameraGroupRequest) (*model.MessageResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		found, err := s.groups.Update(ctx, tx, req)
		return missing(found, err, cameraGroupNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Camera group updated"}, nil
}

func (s *CameraGroupService) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.groups.Delete(ctx, tx, id)
	})
	if err != nil {
		err = dependentsAs(err, "camera_group", fixed("Cannot delete group with children"))
		return nil, notFoundAs(err, cameraGroupNotFound)
	}
	return &model.MessageResponse{Message: "Camera group deleted"}, nil
}

func (s *CameraGroupService) ListFlat(ctx context.Context) ([]model.Group, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.Group, error) {
		return s.groups.ListFlat(ctx, tx)
	})
}

func (s *CameraGroupService) CreateFlat(ctx context.Context, req *model.CreateGroupRequest) (*model.CreatedResponse, error) {
	id, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.groups.CreateFlat(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}
	return &model.CreatedResponse{ID: id, Message: "Group created"}, nil
}
