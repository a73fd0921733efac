package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type RoleRepository struct{}

const (
	colRoleName        column = "name"
	colRoleDescription column = "description"
	colRolePermissions column = "permissions"
)

const roleSelect = `
	SELECT r.id, r.name, r.description, r.permissions, r.created_at, r.updated_at,
		(SELECT COUNT(*) FROM system_users u WHERE u.role_id = r.id) AS users_count
	FROM roles r`

func scanRole(row pgx.CollectableRow) (model.Role, error) {
	var r model.Role
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Permissions, &r.CreatedAt, &r.UpdatedAt, &r.UsersCount)
	return r, err
}

func (r *RoleRepository) List(ctx context.Context, db DBTX) ([]model.Role, error) {
	rows, err := db.Query(ctx, roleSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return pgx.CollectRows(rows, scanRole)
}

func (r *RoleRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.Role, error) {
	rows, err := db.Query(ctx, roleSelect+` WHERE r.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	role, err := pgx.CollectExactlyOneRow(rows, scanRole)
	if err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

func (r *RoleRepository) Create(ctx context.Context, db DBTX, req *model.CreateRoleRequest) (*model.Role, error) {
	rows, err := db.Query(ctx, `
		INSERT INTO roles (name, description, permissions)
		VALUES ($1, $2, COALESCE($3::jsonb, '{}'::jsonb))
		RETURNING id, name, description, permissions, created_at, updated_at, 0::bigint`,
		req.Name, req.Description, req.PermissionsArg(),
	)
	if err != nil {
		return nil, err
	}
	role, err := pgx.CollectExactlyOneRow(rows, scanRole)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Update applies the present fields and reports whether the role exists.
func (r *RoleRepository) Update(ctx context.Context, db DBTX, req *model.UpdateRoleRequest) (bool, error) {
	var u updateSet
	setOptional(&u, colRoleName, req.Name)
	setOptional(&u, colRoleDescription, req.Description)
	setOptional(&u, colRolePermissions, req.PermissionsValue())
	return u.exec(ctx, db, tableRoles, req.ID)
}

// Delete removes the role unless users are still assigned to it.
func (r *RoleRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteUnreferenced(ctx, db, tableRoles, tableSystemUsers, "role_id", id)
}
