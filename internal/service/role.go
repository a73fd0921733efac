package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5"
)

const roleNotFound = "Role not found"

type RoleService struct {
	db    TxRunner
	roles *repository.RoleRepository
}

func NewRoleService(db TxRunner, roles *repository.RoleRepository) *RoleService {
	return &RoleService{db: db, roles: roles}
}

func (s *RoleService) List(ctx context.Context) ([]model.Role, error) {
	return inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) ([]model.Role, error) {
		return s.roles.List(ctx, tx)
	})
}

func (s *RoleService) Get(ctx context.Context, id int64) (*model.Role, error) {
	role, err := inTx(ctx, s.db, database.ReadOnly, func(tx pgx.Tx) (*model.Role, error) {
		return s.roles.GetByID(ctx, tx, id)
	})
	return role, notFoundAs(err, roleNotFound)
}

func (s *RoleService) Create(ctx context.Context, req *model.CreateRoleRequest) (*model.Role, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.Role, error) {
		return s.roles.Create(ctx, tx, req)
	})
}

func (s *RoleService) Update(ctx context.Context, req *model.UpdateRoleRequest) (*model.Role, error) {
	return inTx(ctx, s.db, database.ReadWrite, func(tx pgx.Tx) (*model.Role, error) {
		found, err := s.roles.Update(ctx, tx, req)
		if err := missing(found, err, roleNotFound); err != nil {
			return nil, err
		}
		return s.roles.GetByID(ctx, tx, req.ID)
	})
}

// Delete refuses while users are assigned to the role.
func (s *RoleService) Delete(ctx context.Context, id int64) (*model.MessageResponse, error) {
	err := s.db.WithTx(ctx, database.ReadWrite, func(tx pgx.Tx) error {
		return s.roles.Delete(ctx, tx, id)
	})
	if err != nil {
		err = dependentsAs(err, "role", func(n int64) string {
			return fmt.Sprintf("Cannot delete role with %d assigned users", n)
		})
		return nil, notFoundAs(err, roleNotFound)
	}
	return &model.MessageResponse{Message: "Role deleted successfully"}, nil
}
