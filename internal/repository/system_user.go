package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type SystemUserRepository struct{}

const (
	colUserFullName      column = "full_name"
	colUserPosition      column = "position"
	colUserEmail         column = "email"
	colUserLogin         column = "login"
	colUserPasswordHash  column = "password_hash"
	colUserCompany       column = "company"
	colUserRoleID        column = "role_id"
	colUserUserGroupID   column = "user_group_id"
	colUserCameraGroupID column = "camera_group_id"
	colUserWorkPhone     column = "work_phone"
	colUserMobilePhone   column = "mobile_phone"
	colUserNote          column = "note"
	colUserAttachedFiles column = "attached_files"
	colUserIsOnline      column = "is_online"
)

const systemUserSelect = `
	SELECT u.id, u.full_name, u.position, u.email, u.login, u.password_hash, u.company,
		u.role_id, r.name, u.user_group_id, ug.name, u.camera_group_id, cg.name,
		u.work_phone, u.mobile_phone, u.note, u.attached_files,
		u.is_online, u.last_login, u.created_at, u.updated_at
	FROM system_users u
	LEFT JOIN roles r ON r.id = u.role_id
	LEFT JOIN user_groups ug ON ug.id = u.user_group_id
	LEFT JOIN camera_groups cg ON cg.id = u.camera_group_id`

func scanSystemUser(row pgx.CollectableRow) (model.SystemUser, error) {
	var u model.SystemUser
	err := row.Scan(&u.ID, &u.FullName, &u.Position, &u.Email, &u.Login, &u.PasswordHash, &u.Company,
		&u.RoleID, &u.RoleName, &u.UserGroupID, &u.UserGroupName, &u.CameraGroupID, &u.CameraGroupName,
		&u.WorkPhone, &u.MobilePhone, &u.Note, &u.AttachedFiles,
		&u.IsOnline, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *SystemUserRepository) List(ctx context.Context, db DBTX) ([]model.SystemUser, error) {
	rows, err := db.Query(ctx, systemUserSelect+` ORDER BY u.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list system users: %w", err)
	}
	return pgx.CollectRows(rows, scanSystemUser)
}

func (r *SystemUserRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.SystemUser, error) {
	return r.getOne(ctx, db, `u.id = $1`, id)
}

// GetByLogin is used by authentication. The returned user carries its
// password hash.
func (r *SystemUserRepository) GetByLogin(ctx context.Context, db DBTX, login string) (*model.SystemUser, error) {
	return r.getOne(ctx, db, `u.login = $1`, login)
}

func (r *SystemUserRepository) getOne(ctx context.Context, db DBTX, cond string, arg any) (*model.SystemUser, error) {
	rows, err := db.Query(ctx, systemUserSelect+` WHERE `+cond, arg)
	if err != nil {
		return nil, fmt.Errorf("get system user: %w", err)
	}
	user, err := pgx.CollectExactlyOneRow(rows, scanSystemUser)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *SystemUserRepository) Create(ctx context.Context, db DBTX, req *model.CreateSystemUserRequest, passwordHash string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO system_users (
			full_name, position, email, login, password_hash, company,
			role_id, user_group_id, camera_group_id,
			work_phone, mobile_phone, note, attached_files
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, COALESCE($13::jsonb, '[]'::jsonb))
		RETURNING id`,
		req.FullName, req.Position, req.Email, req.Login, passwordHash, req.Company,
		req.RoleID, req.UserGroupID, req.CameraGroupID,
		req.WorkPhone, req.MobilePhone, req.Note, req.AttachedFiles,
	).Scan(&id)
	return id, err
}

// Update applies the present fields. passwordHash is written only when
// non-empty.
func (r *SystemUserRepository) Update(ctx context.Context, db DBTX, req *model.UpdateSystemUserRequest, passwordHash string) (bool, error) {
	var u updateSet
	setOptional(&u, colUserFullName, req.FullName)
	setOptional(&u, colUserPosition, req.Position)
	setOptional(&u, colUserEmail, req.Email)
	setOptional(&u, colUserLogin, req.Login)
	setOptional(&u, colUserCompany, req.Company)
	setOptional(&u, colUserRoleID, req.RoleID)
	setOptional(&u, colUserUserGroupID, req.UserGroupID)
	setOptional(&u, colUserCameraGroupID, req.CameraGroupID)
	setOptional(&u, colUserWorkPhone, req.WorkPhone)
	setOptional(&u, colUserMobilePhone, req.MobilePhone)
	setOptional(&u, colUserNote, req.Note)
	setOptional(&u, colUserAttachedFiles, req.AttachedFiles)
	setOptional(&u, colUserIsOnline, req.IsOnline)
	if passwordHash != "" {
		u.set(colUserPasswordHash, passwordHash)
	}
	return u.exec(ctx, db, tableSystemUsers, req.ID)
}

func (r *SystemUserRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteByID(ctx, db, tableSystemUsers, id)
}

// MarkLoggedIn records a successful login.
func (r *SystemUserRepository) MarkLoggedIn(ctx context.Context, db DBTX, id int64) error {
	_, err := db.Exec(ctx, `
		UPDATE system_users
		SET last_login = NOW(), is_online = TRUE
		WHERE id = $1`, id)
	return err
}
