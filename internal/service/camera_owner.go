package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

const ownerNotFound = "Owner not found"

type CameraOwnerService struct {
	db     TxRunner
	owners *repository.CameraOwnerRepository
}

func NewCameraOwnerService(db TxRunner, owners *repository.CameraOwnerRepository) *CameraOwnerService {
	return &CameraOwnerService{db: db, owners: owners}
}

func (s *CameraOwnerService) List(ctx context.Context) ([]model.CameraOwner, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.CameraOwner, error) {
		return s.owners.List(ctx, tx)
	})
}

func (s *CameraOwnerService) Get(ctx context.Context, id int64) (*model.CameraOwner, error) {
	owner, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.CameraOwner, error) {
		return s.owners.GetByID(ctx, tx, id)
	})
	return owner, notFoundAs(err, ownerNotFound)
}

func (s *CameraOwnerService) Create(ctx context.Context, req *model.CreateCameraOwnerRequest) (*model.CameraOwner, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.CameraOwner, error) {
		return s.owners.Create(ctx, tx, req)
	})
}

func (s *CameraOwnerService) Update(ctx context.Context, req *model.UpdateCameraOwnerRequest) (*model.CameraOwner, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.CameraOwner, error) {
		found, err := s.owners.Update(ctx, tx, req)
		if err := missing(found, err, ownerNotFound); err != nil {
			return nil, err
		}
		return s.owners.GetByID(ctx, tx, req.ID)
	})
}

func (s *CameraOwnerService) Delete(ctx context.Context, id int64) (*model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.owners.Delete(ctx, tx, id)
	})
	if err != nil {
		err = dependentsAs(err, "camera_owner", fixed("Cannot delete owner with children"))
		return nil, notFoundAs(err, ownerNotFound)
	}
	resp := model.Success(id)
	return &resp, nil
}
