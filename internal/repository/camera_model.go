package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type CameraModelRepository struct{}

const (
	colModelManufacturer column = "manufacturer"
	colModelName         column = "model_name"
	colModelDescription  column = "description"
	colModelSupportsPTZ  column = "supports_ptz"
)

func (r *CameraModelRepository) List(ctx context.Context, db DBTX) ([]model.CameraModel, error) {
	rows, err := db.Query(ctx, `
		SELECT id, manufacturer, model_name, description, supports_ptz, created_at, updated_at
		FROM camera_models
		ORDER BY manufacturer, model_name`)
	if err != nil {
		return nil, fmt.Errorf("list camera models: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CameraModel, error) {
		var m model.CameraModel
		err := row.Scan(&m.ID, &m.Manufacturer, &m.ModelName, &m.Description, &m.SupportsPTZ, &m.CreatedAt, &m.UpdatedAt)
		return m, err
	})
}

func (r *CameraModelRepository) Create(ctx context.Context, db DBTX, req *model.CreateCameraModelRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO camera_models (manufacturer, model_name, description, supports_ptz)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		req.Manufacturer, req.ModelName, req.Description, req.SupportsPTZ,
	).Scan(&id)
	return id, err
}

func (r *CameraModelRepository) Update(ctx context.Context, db DBTX, req *model.UpdateCameraModelRequest) (bool, error) {
	var u updateSet
	setOptional(&u, colModelManufacturer, req.Manufacturer)
	setOptional(&u, colModelName, req.ModelName)
	setOptional(&u, colModelDescription, req.Description)
	setOptional(&u, colModelSupportsPTZ, req.SupportsPTZ)
	return u.exec(ctx, db, tableCameraModels, req.ID)
}

// Delete removes the model. Cameras using it keep existing with no model.
func (r *CameraModelRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteByID(ctx, db, tableCameraModels, id)
}
