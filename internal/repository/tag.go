package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
)

type TagRepository struct{}

func (r *TagRepository) List(ctx context.Context, db DBTX) ([]model.Tag, error) {
	rows, err := db.Query(ctx, `
		SELECT t.id, t.name, t.tag_group_id, t.color, t.description, t.created_at,
			tg.name, tg.color,
			COUNT(DISTINCT a.camera_id) AS camera_count
		FROM camera_tags t
		LEFT JOIN tag_groups tg ON tg.id = t.tag_group_id
		LEFT JOIN camera_tag_assignments a ON a.tag_id = t.id
		GROUP BY t.id, tg.name, tg.color
		ORDER BY tg.name, t.name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Tag, error) {
		var t model.Tag
		err := row.Scan(&t.ID, &t.Name, &t.TagGroupID, &t.Color, &t.Description, &t.CreatedAt,
			&t.TagGroupName, &t.TagGroupColor, &t.CameraCount)
		return t, err
	})
}

func (r *TagRepository) Create(ctx context.Context, db DBTX, req *model.CreateTagRequest) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO camera_tags (name, tag_group_id, color, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		req.Name, req.TagGroupID, req.Color, req.Description,
	).Scan(&id)
	return id, err
}
