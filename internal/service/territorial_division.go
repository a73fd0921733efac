package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

const divisionNotFound = "Division not found"

type TerritorialDivisionService struct {
	db        TxRunner
	divisions *repository.TerritorialDivisionRepository
}

func NewTerritorialDivisionService(db TxRunner, divisions *repository.TerritorialDivisionRepository) *TerritorialDivisionService {
	return &TerritorialDivisionService{db: db, divisions: divisions}
}

func (s *TerritorialDivisionService) List(ctx context.Context) ([]model.TerritorialDivision, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.TerritorialDivision, error) {
		return s.divisions.List(ctx, tx)
	})
}

func (s *TerritorialDivisionService) Get(ctx context.Context, id int64) (*model.TerritorialDivision, error) {
	division, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.TerritorialDivision, error) {
		return s.divisions.GetByID(ctx, tx, id)
	})
	return division, notFoundAs(err, divisionNotFound)
}

func (s *TerritorialDivisionService) Create(ctx context.Context, req *model.CreateTerritorialDivisionRequest) (*model.TerritorialDivision, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.TerritorialDivision, error) {
		return s.divisions.Create(ctx, tx, req)
	})
}

func (s *TerritorialDivisionService) Update(ctx context.Context, req *model.UpdateTerritorialDivisionRequest) (*model.TerritorialDivision, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.TerritorialDivision, error) {
		found, err := s.divisions.Update(ctx, tx, req)
		if err := missing(found, err, divisionNotFound); err != nil {
			return nil, err
		}
		return s.divisions.GetByID(ctx, tx, req.ID)
	})
}

func (s *TerritorialDivisionService) Delete(ctx context.Context, id int64) (*model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.divisions.Delete(ctx, tx, id)
	})
	if err != nil {
		return nil, notFoundAs(err, divisionNotFound)
	}
	resp := model.Success(id)
	return &resp, nil
}
