package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/errs"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

const cameraNotFound = "Camera not found"

// CameraService serves /cameras, /camera-registry and /cameras-stats.
type CameraService struct {
	db      TxRunner
	cameras *repository.CameraRepository
}

func NewCameraService(db TxRunner, cameras *repository.CameraRepository) *CameraService {
	return &CameraService{db: db, cameras: cameras}
}

func (s *CameraService) List(ctx context.Context, filter *model.CameraFilter) ([]model.Camera, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.Camera, error) {
		return s.cameras.List(ctx, tx, filter)
	})
}

func (s *CameraService) Get(ctx context.Context, id int64) (*model.Camera, error) {
	camera, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.Camera, error) {
		return s.cameras.GetByID(ctx, tx, id)
	})
	return camera, notFoundAs(err, cameraNotFound)
}

func (s *CameraService) Create(ctx context.Context, req *model.CreateCameraRequest) (*model.Camera, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.Camera, error) {
		id, err := s.cameras.Create(ctx, tx, req)
		if err != nil {
			return nil, err
		}
		return s.cameras.GetByID(ctx, tx, id)
	})
}

func (s *CameraService) Update(ctx context.Context, req *model.UpdateCameraRequest) (*model.Camera, error) {
	if !req.HasChanges() {
		return nil, errs.NewBadRequestError("no fields to update", true, nil, nil)
	}

	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.Camera, error) {
		found, err := s.cameras.Update(ctx, tx, req)
		if err := missing(found, err, cameraNotFound); err != nil {
			return nil, err
		}
		return s.cameras.GetByID(ctx, tx, req.ID)
	})
}

func (s *CameraService) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	if err := s.delete(ctx, id); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Camera deleted", ID: &id}, nil
}

func (s *CameraService) delete(ctx context.Context, id int64) error {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.cameras.Delete(ctx, tx, id)
	})
	return notFoundAs(err, cameraNotFound)
}

func (s *CameraService) ListRegistry(ctx context.Context) ([]model.RegistryCamera, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.RegistryCamera, error) {
		return s.cameras.ListRegistry(ctx, tx)
	})
}

func (s *CameraService) GetRegistry(ctx context.Context, id int64) (*model.RegistryCamera, error) {
	camera, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.RegistryCamera, error) {
		return s.cameras.GetRegistryByID(ctx, tx, id)
	})
	return camera, notFoundAs(err, cameraNotFound)
}

func (s *CameraService) CreateRegistry(ctx context.Context, req *model.CreateRegistryCameraRequest) (*model.CreatedResponse, error) {
	id, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.cameras.CreateRegistry(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}
	return &model.CreatedResponse{ID: id}, nil
}

func (s *CameraService) UpdateRegistry(ctx context.Context, req *model.UpdateRegistryCameraRequest) (*model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		found, err := s.cameras.UpdateRegistry(ctx, tx, req)
		return missing(found, err, cameraNotFound)
	})
	if err != nil {
		return nil, err
	}
	resp := model.Success()
	return &resp, nil
}

func (s *CameraService) DeleteRegistry(ctx context.Context, id int64) (*model.SuccessResponse, error) {
	if err := s.delete(ctx, id); err != nil {
		return nil, err
	}
	resp := model.Success()
	return &resp, nil
}

func (s *CameraService) Stats(ctx context.Context) (*model.CameraStats, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.CameraStats, error) {
		return s.cameras.Stats(ctx, tx)
	})
}
