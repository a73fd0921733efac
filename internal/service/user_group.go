package service

import (
	"context"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

const userGroupNotFound = "Group not found"

type UserGroupService struct {
	db     TxRunner
	groups *repository.UserGroupRepository
}

func NewUserGroupService(db TxRunner, groups *repository.UserGroupRepository) *UserGroupService {
	return &UserGroupService{db: db, groups: groups}
}

func (s *UserGroupService) List(ctx context.Context) ([]model.UserGroup, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.UserGroup, error) {
		return s.groups.List(ctx, tx)
	})
}

func (s *UserGroupService) Get(ctx context.Context, id int64) (*model.UserGroup, error) {
	group, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.UserGroup, error) {
		return s.groups.GetByID(ctx, tx, id)
	})
	return group, notFoundAs(err, userGroupNotFound)
}

func (s *UserGroupService) Create(ctx context.Context, req *model.CreateUserGroupRequest) (*model.UserGroup, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.UserGroup, error) {
		id, err := s.groups.Create(ctx, tx, req)
		if err != nil {
			return nil, err
		}
		return s.groups.GetByID(ctx, tx, id)
	})
}

func (s *UserGroupService) Update(ctx context.Context, req *model.UpdateUserGroupRequest) (*model.UserGroup, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.UserGroup, error) {
		found, err := s.groups.Update(ctx, tx, req)
		if err := missing(found, err, userGroupNotFound); err != nil {
			return nil, err
		}
		return s.groups.GetByID(ctx, tx, req.ID)
	})
}

func (s *UserGroupService) Delete(ctx context.Context, id int64) (*model.SuccessResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.groups.Delete(ctx, tx, id)
	})
	if err != nil {
		err = dependentsAs(err, "user_group", fixed("Cannot delete group with children"))
		return nil, notFoundAs(err, userGroupNotFound)
	}
	resp := model.Success(id)
	return &resp, nil
}
