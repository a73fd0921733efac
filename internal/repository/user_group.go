package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type UserGroupRepository struct{}

const (
	colUserGroupName        column = "name"
	colUserGroupDescription column = "description"
	colUserGroupParentID    column = "parent_id"
	colUserGroupUserCount   column = "user_count"
)

// user_count on reads is the live number of assigned users, not the
// stored column.
const userGroupSelect = `
	SELECT g.id, g.name, g.description, g.parent_id,
		(SELECT COUNT(*) FROM system_users u WHERE u.user_group_id = g.id) AS user_count,
		g.created_at, g.updated_at
	FROM user_groups g`

func scanUserGroup(row pgx.CollectableRow) (model.UserGroup, error) {
	var g model.UserGroup
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.ParentID, &g.UserCount, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *UserGroupRepository) List(ctx context.Context, db DBTX) ([]model.UserGroup, error) {
	rows, err := db.Query(ctx, userGroupSelect+` ORDER BY g.parent_id NULLS FIRST, g.name`)
	if err != nil {
		return nil, fmt.Errorf("list user groups: %w", err)
	}
	return pgx.CollectRows(rows, scanUserGroup)
}

func (r *UserGroupRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.UserGroup, error) {
	rows, err := db.Query(ctx, userGroupSelect+` WHERE g.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get user group: %w", err)
	}
	group, err := pgx.CollectExactlyOneRow(rows, scanUserGroup)
	if err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

func (r *UserGroupRepository) Create(ctx context.Context, db DBTX, req *model.CreateUserGroupRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO user_groups (name, description, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		req.Name, req.Description, req.ParentID,
	).Scan(&id)
	return id, err
}

func (r *UserGroupRepository) Update(ctx context.Context, db DBTX, req *model.UpdateUserGroupRequest) (bool, error) {
	var u updateSet
	u.set(colUserGroupName, req.Name)
	setOptional(&u, colUserGroupDescription, req.Description)
	setOptional(&u, colUserGroupParentID, req.ParentID)
	setOptional(&u, colUserGroupUserCount, req.UserCount)
	return u.exec(ctx, db, tableUserGroups, req.ID)
}

// Delete refuses while child groups exist.
func (r *UserGroupRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteUnreferenced(ctx, db, tableUserGroups, tableUserGroups, colUserGroupParentID, id)
}
