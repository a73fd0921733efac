package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type TerritorialDivisionRepository struct{}

const (
	colDivisionName        column = "name"
	colDivisionCameraCount column = "camera_count"
	colDivisionParentID    column = "parent_id"
	colDivisionColor       column = "color"
)

const divisionColumns = `id, name, camera_count, parent_id, color, created_at, updated_at`

func scanDivision(row pgx.CollectableRow) (model.TerritorialDivision, error) {
	var d model.TerritorialDivision
	err := row.Scan(&d.ID, &d.Name, &d.CameraCount, &d.ParentID, &d.Color, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *TerritorialDivisionRepository) List(ctx context.Context, db DBTX) ([]model.TerritorialDivision, error) {
	rows, err := db.Query(ctx, `SELECT `+divisionColumns+` FROM territorial_divisions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list territorial divisions: %w", err)
	}
	return pgx.CollectRows(rows, scanDivision)
}

func (r *TerritorialDivisionRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.TerritorialDivision, error) {
	rows, err := db.Query(ctx, `SELECT `+divisionColumns+` FROM territorial_divisions WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get territorial division: %w", err)
	}
	division, err := pgx.CollectExactlyOneRow(rows, scanDivision)
	if err != nil {
		return nil, notFound(err)
	}
	return &division, nil
}

func (r *TerritorialDivisionRepository) Create(ctx context.Context, db DBTX, req *model.CreateTerritorialDivisionRequest) (*model.TerritorialDivision, error) {
	rows, err := db.Query(ctx, `
		INSERT INTO territorial_divisions (name, camera_count, parent_id, color)
		VALUES ($1, $2, $3, $4)
		RETURNING `+divisionColumns,
		req.Name, req.CameraCount, req.ParentID, req.Color,
	)
	if err != nil {
		return nil, err
	}
	division, err := pgx.CollectExactlyOneRow(rows, scanDivision)
	if err != nil {
		return nil, err
	}
	return &division, nil
}

func (r *TerritorialDivisionRepository) Update(ctx context.Context, db DBTX, req *model.UpdateTerritorialDivisionRequest) (bool, error) {
	var u updateSet
	setOptional(&u, colDivisionName, req.Name)
	setOptional(&u, colDivisionCameraCount, req.CameraCount)
	setOptional(&u, colDivisionParentID, req.ParentID)
	setOptional(&u, colDivisionColor, req.Color)
	return u.exec(ctx, db, tableTerritorialDivisions, req.ID)
}

// Delete removes the division; children are detached by the foreign key.
func (r *TerritorialDivisionRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteByID(ctx, db, tableTerritorialDivisions, id)
}
