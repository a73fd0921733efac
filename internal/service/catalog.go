package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

type TagService struct {
	db   TxRunner
	tags *repository.TagRepository
}

func NewTagService(db TxRunner, tags *repository.TagRepository) *TagService {
	return &TagService{db: db, tags: tags}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.Tag, error) {
		return s.tags.List(ctx, tx)
	})
}

func (s *TagService) Create(ctx context.Context, req *model.CreateTagRequest) (*model.CreatedResponse, error) {
	id, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.tags.Create(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}
	return &model.CreatedResponse{ID: id, Message: "Tag created"}, nil
}

const modelNotFound = "Model not found"

type CameraModelService struct {
	db     TxRunner
	models *repository.CameraModelRepository
}

func NewCameraModelService(db TxRunner, models *repository.CameraModelRepository) *CameraModelService {
	return &CameraModelService{db: db, models: models}
}

func (s *CameraModelService) List(ctx context.Context) ([]model.CameraModel, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.CameraModel, error) {
		return s.models.List(ctx, tx)
	})
}

func (s *CameraModelService) Create(ctx context.Context, req *model.CreateCameraModelRequest) (*model.CreatedResponse, error) {
	id, err := inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (int64, error) {
		return s.models.Create(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}
	return &model.CreatedResponse{ID: id, Message: "Model created"}, nil
}

func (s *CameraModelService) Update(ctx context.Context, req *model.UpdateCameraModelRequest) (*model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		found, err := s.models.Update(ctx, tx, req)
		return missing(found, err, modelNotFound)
	})
	if err != nil {
		return nil, err
	}
	resp := model.Success()
	return &resp, nil
}

func (s *CameraModelService) Delete(ctx context.Context, id int64) (*model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.models.Delete(ctx, tx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, modelNotFound)
	}
	resp := model.Success()
	return &resp, nil
}
