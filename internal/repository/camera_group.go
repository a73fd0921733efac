package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type CameraGroupRepository struct{}

const (
	colCameraGroupName        column = "name"
	colCameraGroupDescription column = "description"
	colCameraGroupParentID    column = "parent_id"
)

const cameraGroupSelect = `
	SELECT g.id, g.name, g.description, g.parent_id,
		COALESCE(ARRAY_AGG(m.camera_id ORDER BY m.camera_id) FILTER (WHERE m.camera_id IS NOT NULL), '{}') AS camera_ids,
		COUNT(m.camera_id) AS camera_count,
		g.created_at, g.updated_at
	FROM camera_groups g
	LEFT JOIN camera_group_members m ON m.group_id = g.id`

func scanCameraGroup(row pgx.CollectableRow) (model.CameraGroup, error) {
	var g model.CameraGroup
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.ParentID, &g.CameraIDs, &g.CameraCount, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *CameraGroupRepository) List(ctx context.Context, db DBTX) ([]model.CameraGroup, error) {
	rows, err := db.Query(ctx, cameraGroupSelect+` GROUP BY g.id ORDER BY g.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list camera groups: %w", err)
	}
	return pgx.CollectRows(rows, scanCameraGroup)
}

func (r *CameraGroupRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.CameraGroup, error) {
	rows, err := db.Query(ctx, cameraGroupSelect+` WHERE g.id = $1 GROUP BY g.id`, id)
	if err != nil {
		return nil, fmt.Errorf("get camera group: %w", err)
	}
	group, err := pgx.CollectExactlyOneRow(rows, scanCameraGroup)
	if err != nil {
		return nil, notFound(err)
	}
	return &group, nil
}

// Create inserts the group and its memberships on the same DBTX.
func (r *CameraGroupRepository) Create(ctx context.Context, db DBTX, req *model.CreateCameraGroupRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO camera_groups (name, description, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		req.Name, req.Description, req.ParentID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := insertCameraLinks(ctx, db, junctionGroupMembers, colGroupID, colCameraID, id, req.CameraIDs); err != nil {
		return 0, err
	}
	return id, nil
}

// Update applies the present fields; camera_ids, when present, replaces
// the whole membership.
func (r *CameraGroupRepository) Update(ctx context.Context, db DBTX, req *model.UpdateCameraGroupRequest) (bool, error) {
	var u updateSet
	setOptional(&u, colCameraGroupName, req.Name)
	setOptional(&u, colCameraGroupDescription, req.Description)
	setOptional(&u, colCameraGroupParentID, req.ParentID)

	found, err := u.exec(ctx, db, tableCameraGroups, req.ID)
	if err != nil || !found {
		return found, err
	}

	if req.CameraIDs.Set {
		ids, _ := req.CameraIDs.Get()
		if err := replaceCameraLinks(ctx, db, junctionGroupMembers, colGroupID, colCameraID, req.ID, ids); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Delete refuses while child groups exist. Memberships cascade.
func (r *CameraGroupRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteUnreferenced(ctx, db, tableCameraGroups, tableCameraGroups, colCameraGroupParentID, id)
}

// ListFlat is the /groups view: parent name and member count.
func (r *CameraGroupRepository) ListFlat(ctx context.Context, db DBTX) ([]model.Group, error) {
	rows, err := db.Query(ctx, `
		SELECT g.id, g.name, g.description, g.parent_id, pg.name,
			COUNT(DISTINCT m.camera_id) AS camera_count,
			g.created_at, g.updated_at
		FROM camera_groups g
		LEFT JOIN camera_groups pg ON pg.id = g.parent_id
		LEFT JOIN camera_group_members m ON m.group_id = g.id
		GROUP BY g.id, pg.name
		ORDER BY g.name`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Group, error) {
		var g model.Group
		err := row.Scan(&g.ID, &g.Name, &g.Description, &g.ParentGroupID, &g.ParentGroupName,
			&g.CameraCount, &g.CreatedAt, &g.UpdatedAt)
		return g, err
	})
}

func (r *CameraGroupRepository) CreateFlat(ctx context.Context, db DBTX, req *model.CreateGroupRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO camera_groups (name, parent_id, description)
		VALUES ($1, $2, $3)
		RETURNING id`,
		req.Name, req.ParentGroupID, req.Description,
	).Scan(&id)
	return id, err
}
