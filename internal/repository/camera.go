package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CameraRepository serves both projections of the cameras table: the
// operational view behind /cameras and the inventory view behind
// /camera-registry.
type CameraRepository struct{}

const (
	colCameraName                column = "name"
	colCameraAddress             column = "address"
	colCameraStatus              column = "status"
	colCameraOwner               column = "owner"
	colCameraLatitude            column = "latitude"
	colCameraLongitude           column = "longitude"
	colCameraResolution          column = "resolution"
	colCameraFPS                 column = "fps"
	colCameraTraffic             column = "traffic"
	colCameraRTSPURL             column = "rtsp_url"
	colCameraRTSPLogin           column = "rtsp_login"
	colCameraRTSPPassword        column = "rtsp_password"
	colCameraModelID             column = "model_id"
	colCameraPTZIP               column = "ptz_ip"
	colCameraPTZPort             column = "ptz_port"
	colCameraPTZLogin            column = "ptz_login"
	colCameraPTZPassword         column = "ptz_password"
	colCameraTerritorialDivision column = "territorial_division"
	colCameraArchiveDepthDays    column = "archive_depth_days"
	colCameraDescription         column = "description"
)

const cameraLinks = `
	COALESCE((SELECT ARRAY_AGG(m.group_id ORDER BY m.group_id) FROM camera_group_members m WHERE m.camera_id = c.id), '{}') AS group_ids,
	COALESCE((SELECT ARRAY_AGG(a.tag_id ORDER BY a.tag_id) FROM camera_tag_assignments a WHERE a.camera_id = c.id), '{}') AS tag_ids`

const cameraSelect = `
	SELECT c.id, c.name, c.address, c.status, c.owner,
		c.latitude AS lat, c.longitude AS lng,
		c.resolution, c.fps, c.traffic,` + cameraLinks + `,
		c.created_at, c.updated_at
	FROM cameras c`

func scanCamera(row pgx.CollectableRow) (model.Camera, error) {
	var c model.Camera
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Status, &c.Owner,
		&c.Lat, &c.Lng, &c.Resolution, &c.FPS, &c.Traffic,
		&c.GroupIDs, &c.TagIDs, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns cameras ordered by id, narrowed by the non-empty filters.
func (r *CameraRepository) List(ctx context.Context, db DBTX, f *model.CameraFilter) ([]model.Camera, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if f.Owner != "" {
		args = append(args, f.Owner)
		where = append(where, fmt.Sprintf("c.owner = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(c.name ILIKE $%[1]d OR c.address ILIKE $%[1]d)", len(args)))
	}

	query := cameraSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY c.id"

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cameras: %w", err)
	}
	return pgx.CollectRows(rows, scanCamera)
}

func (r *CameraRepository) GetByID(ctx context.Context, db DBTX, id int64) (*model.Camera, error) {
	rows, err := db.Query(ctx, cameraSelect+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get camera: %w", err)
	}
	camera, err := pgx.CollectExactlyOneRow(rows, scanCamera)
	if err != nil {
		return nil, notFound(err)
	}
	return &camera, nil
}

func (r *CameraRepository) Create(ctx context.Context, db DBTX, req *model.CreateCameraRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO cameras (name, address, owner, latitude, longitude, status, resolution, fps, traffic)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		req.Name, req.Address, req.Owner, req.Lat, req.Lng,
		req.Status, req.Resolution, req.FPS, req.Traffic,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := r.linkCamera(ctx, db, id, req.GroupIDs, req.TagIDs); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CameraRepository) Update(ctx context.Context, db DBTX, req *model.UpdateCameraRequest) (bool, error) {
	var u updateSet
	setOptional(&u, colCameraName, req.Name)
	setOptional(&u, colCameraAddress, req.Address)
	setOptional(&u, colCameraStatus, req.Status)
	setOptional(&u, colCameraOwner, req.Owner)
	setOptional(&u, colCameraLatitude, req.Lat)
	setOptional(&u, colCameraLongitude, req.Lng)
	setOptional(&u, colCameraResolution, req.Resolution)
	setOptional(&u, colCameraFPS, req.FPS)
	setOptional(&u, colCameraTraffic, req.Traffic)

	found, err := u.exec(ctx, db, tableCameras, req.ID)
	if err != nil || !found {
		return found, err
	}
	return true, r.relinkCamera(ctx, db, req.ID, req.GroupIDs, req.TagIDs)
}

// Delete removes the camera; junction rows cascade.
func (r *CameraRepository) Delete(ctx context.Context, db DBTX, id int64) error {
	return deleteByID(ctx, db, tableCameras, id)
}

const registrySelect = `
	SELECT c.id, c.name, c.rtsp_url, c.model_id, cm.manufacturer, cm.model_name,
		c.ptz_ip, c.ptz_port, c.owner, c.address, c.latitude, c.longitude,
		c.territorial_division, c.archive_depth_days, c.description, c.status,` + cameraLinks + `,
		c.created_at, c.updated_at
	FROM cameras c
	LEFT JOIN camera_models cm ON cm.id = c.model_id`

func scanRegistryCamera(row pgx.CollectableRow) (model.RegistryCamera, error) {
	var c model.RegistryCamera
	err := row.Scan(&c.ID, &c.Name, &c.RTSPURL, &c.ModelID, &c.Manufacturer, &c.ModelName,
		&c.PTZIP, &c.PTZPort, &c.Owner, &c.Address, &c.Latitude, &c.Longitude,
		&c.TerritorialDivision, &c.ArchiveDepthDays, &c.Description, &c.Status,
		&c.GroupIDs, &c.TagIDs, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListRegistry returns the inventory view. Credentials are never selected.
func (r *CameraRepository) ListRegistry(ctx context.Context, db DBTX) ([]model.RegistryCamera, error) {
	rows, err := db.Query(ctx, registrySelect+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list camera registry: %w", err)
	}
	return pgx.CollectRows(rows, scanRegistryCamera)
}

func (r *CameraRepository) GetRegistryByID(ctx context.Context, db DBTX, id int64) (*model.RegistryCamera, error) {
	rows, err := db.Query(ctx, registrySelect+` WHERE c.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get registry camera: %w", err)
	}
	camera, err := pgx.CollectExactlyOneRow(rows, scanRegistryCamera)
	if err != nil {
		return nil, notFound(err)
	}
	return &camera, nil
}

func (r *CameraRepository) CreateRegistry(ctx context.Context, db DBTX, req *model.CreateRegistryCameraRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO cameras (
			name, rtsp_url, rtsp_login, rtsp_password, model_id,
			ptz_ip, ptz_port, ptz_login, ptz_password,
			owner, address, latitude, longitude,
			territorial_division, archive_depth_days, description, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`,
		req.Name, req.RTSPURL, req.RTSPLogin, req.RTSPPassword, req.ModelID,
		req.PTZIP, req.PTZPort, req.PTZLogin, req.PTZPassword,
		req.Owner, req.Address, req.Latitude, req.Longitude,
		req.TerritorialDivision, req.ArchiveDepthDays, req.Description, req.Status,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := r.linkCamera(ctx, db, id, req.GroupIDs, req.TagIDs); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CameraRepository) UpdateRegistry(ctx context.Context, db DBTX, req *model.UpdateRegistryCameraRequest) (bool, error) {
	var u updateSet
	setOptional(&u, colCameraName, req.Name)
	setOptional(&u, colCameraRTSPURL, req.RTSPURL)
	setOptional(&u, colCameraRTSPLogin, req.RTSPLogin)
	setOptional(&u, colCameraRTSPPassword, req.RTSPPassword)
	setOptional(&u, colCameraModelID, req.ModelID)
	setOptional(&u, colCameraPTZIP, req.PTZIP)
	setOptional(&u, colCameraPTZPort, req.PTZPort)
	setOptional(&u, colCameraPTZLogin, req.PTZLogin)
	setOptional(&u, colCameraPTZPassword, req.PTZPassword)
	setOptional(&u, colCameraOwner, req.Owner)
	setOptional(&u, colCameraAddress, req.Address)
	setOptional(&u, colCameraLatitude, req.Latitude)
	setOptional(&u, colCameraLongitude, req.Longitude)
	setOptional(&u, colCameraTerritorialDivision, req.TerritorialDivision)
	setOptional(&u, colCameraArchiveDepthDays, req.ArchiveDepthDays)
	setOptional(&u, colCameraDescription, req.Description)
	setOptional(&u, colCameraStatus, req.Status)

	found, err := u.exec(ctx, db, tableCameras, req.ID)
	if err != nil || !found {
		return found, err
	}
	return true, r.relinkCamera(ctx, db, req.ID, req.GroupIDs, req.TagIDs)
}

func (r *CameraRepository) linkCamera(ctx context.Context, db DBTX, cameraID int64, groupIDs, tagIDs []int64) error {
	if err := insertCameraLinks(ctx, db, junctionGroupMembers, colCameraID, colGroupID, cameraID, groupIDs); err != nil {
		return err
	}
	return insertCameraLinks(ctx, db, junctionTagAssignment, colCameraID, colTagID, cameraID, tagIDs)
}

// relinkCamera replaces only the junctions whose ids were sent.
func (r *CameraRepository) relinkCamera(ctx context.Context, db DBTX, cameraID int64, groupIDs, tagIDs model.Optional[[]int64]) error {
	if groupIDs.Set {
		ids, _ := groupIDs.Get()
		if err := replaceCameraLinks(ctx, db, junctionGroupMembers, colCameraID, colGroupID, cameraID, ids); err != nil {
			return err
		}
	}
	if tagIDs.Set {
		ids, _ := tagIDs.Get()
		if err := replaceCameraLinks(ctx, db, junctionTagAssignment, colCameraID, colTagID, cameraID, ids); err != nil {
			return err
		}
	}
	return nil
}

// Stats aggregates the whole table. Traffic and fps come back as NUMERIC
// and are narrowed to float64 only for the response.
func (r *CameraRepository) Stats(ctx context.Context, db DBTX) (*model.CameraStats, error) {
	var (
		stats        model.CameraStats
		totalTraffic decimal.Decimal
		avgFPS       decimal.Decimal
	)
	err := db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN status = 'active' THEN 1 END),
			COUNT(CASE WHEN status = 'inactive' THEN 1 END),
			COUNT(CASE WHEN status = 'problem' THEN 1 END),
			COALESCE(SUM(traffic), 0),
			COALESCE(AVG(fps), 0)
		FROM cameras`,
	).Scan(&stats.Total, &stats.Active, &stats.Inactive, &stats.Problem, &totalTraffic, &avgFPS)
	if err != nil {
		return nil, fmt.Errorf("camera totals: %w", err)
	}
	stats.TotalTraffic = totalTraffic.InexactFloat64()
	stats.AvgFPS = avgFPS.Round(2).InexactFloat64()

	rows, err := db.Query(ctx, `
		SELECT owner, COUNT(*) AS count
		FROM cameras
		GROUP BY owner
		ORDER BY count DESC, owner`)
	if err != nil {
		return nil, fmt.Errorf("cameras by owner: %w", err)
	}
	stats.ByOwner, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.OwnerCount])
	if err != nil {
		return nil, fmt.Errorf("cameras by owner: %w", err)
	}

	rows, err = db.Query(ctx, `
		SELECT g.name, COUNT(m.camera_id) AS count
		FROM camera_group_members m
		JOIN camera_groups g ON g.id = m.group_id
		GROUP BY g.id, g.name
		ORDER BY count DESC, g.name`)
	if err != nil {
		return nil, fmt.Errorf("cameras by group: %w", err)
	}
	stats.ByGroup, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.GroupCount])
	if err != nil {
		return nil, fmt.Errorf("cameras by group: %w", err)
	}
	return &stats, nil
}
