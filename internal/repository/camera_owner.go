package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type CameraOwnerRepository struct{}

const (
	colOwnerName        column = "name"
	colOwnerDescription column = "description"
	colOwnerParentID    column = "parent_id"
)

const ownerColumns = `id, name, description, parent_id, created_at, updated_at`

func scanOwner(row pgx.CollectableRow) (model.CameraOwner, error) {
	var o model.CameraOwner
	err := row.Scan(&o.ID, &o.Name, &o.Description, &o.ParentID, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *CameraOwnerRepository) List(ctx context.Context, db DBTX) ([]model.CameraOwner, error) {
	rows, err := db.Query(ctx, `SELECT `+ownerColumns+` FROM camera_owners ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list camera owners: %w", err)
	}
	return pgx.CollectRows(rows, scanOwner)
}

func (r *CameraOwnerRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.CameraOwner, error) {
	rows, err := db.Query(ctx, `SELECT `+ownerColumns+` FROM camera_owners WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get camera owner: %w", err)
	}
	owner, err := pgx.CollectExactlyOneRow(rows, scanOwner)
	if err != nil {
		return nil, notFound(err)
	}
	return &owner, nil
}

func (r *CameraOwnerRepository) Create(ctx context.Context, db DBTX, req *model.CreateCameraOwnerRequest) (*model.CameraOwner, error) {
	rows, err := db.Query(ctx, `
		INSERT INTO camera_owners (name, description, parent_id)
		VALUES ($1, $2, $3)
		RETURNING `+ownerColumns,
		req.Name, req.Description, req.ParentID,
	)
	if err != nil {
		return nil, err
	}
	owner, err := pgx.CollectExactlyOneRow(rows, scanOwner)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *CameraOwnerRepository) Update(ctx context.Context, db DBTX, req *model.UpdateCameraOwnerRequest) (bool, error) {
	var u updateSet
	u.set(colOwnerName, req.Name)
	setOptional(&u, colOwnerDescription, req.Description)
	setOptional(&u, colOwnerParentID, req.ParentID)
	return u.exec(ctx, db, tableCameraOwners, req.ID)
}

// Delete refuses while child owners exist.
func (r *CameraOwnerRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteUnreferenced(ctx, db, tableCameraOwners, tableCameraOwners, colOwnerParentID, id)
}
