package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

// DependentsError is returned by guarded deletes when rows still reference
// the target.
type DependentsError struct {
	Count int64
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("%d dependent rows", e.Count)
}

// DBTX is satisfied by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// table and column are only ever built from the constants below, never
// from request input.
type (
	table  string
	column string
)

const (
	tableRoles                table = "roles"
	tableUserGroups           table = "user_groups"
	tableCameraGroups         table = "camera_groups"
	tableCameraOwners         table = "camera_owners"
	tableCameraModels         table = "camera_models"
	tableTerritorialDivisions table = "territorial_divisions"
	tableCameras              table = "cameras"
	tableSystemUsers          table = "system_users"
)

// updateSet accumulates "column = $n" assignments for a partial UPDATE.
type updateSet struct {
	cols []column
	args []any
}

func (u *updateSet) set(col column, value any) {
	u.cols = append(u.cols, col)
	u.args = append(u.args, value)
}

// setOptional adds col when the field was present in the request.
func setOptional[T any](u *updateSet, col column, o model.Optional[T]) {
	if o.Set {
		u.set(col, o.Arg())
	}
}

func (u *updateSet) empty() bool {
	return len(u.cols) == 0
}

// exec runs the UPDATE against id. updated_at is always touched, so an
// update with no fields still reports whether the row exists.
func (u *updateSet) exec(ctx context.Context, db DBTX, t table, id int64) (bool, error) {
	assignments := make([]string, 0, len(u.cols)+1)
	for i, col := range u.cols {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
	}
	assignments = append(assignments, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		t, strings.Join(assignments, ", "), len(u.args)+1)

	tag, err := db.Exec(ctx, query, append(u.args, id)...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// deleteUnreferenced deletes t.id unless refTable.refColumn still points at
// it. The count and the delete happen in one statement; the RESTRICT foreign
// key covers rows that appear concurrently.
func deleteUnreferenced(ctx context.Context, db DBTX, t, refTable table, refColumn column, id int64) error {
	query := fmt.Sprintf(`
		WITH dependents AS (
			SELECT COUNT(*) AS n FROM %[2]s WHERE %[3]s = $1
		),
		deleted AS (
			DELETE FROM %[1]s
			WHERE id = $1 AND (SELECT n FROM dependents) = 0
			RETURNING id
		)
		SELECT (SELECT n FROM dependents), (SELECT id FROM deleted)`, t, refTable, refColumn)

	var (
		dependents int64
		deletedID  *int64
	)
	if err := db.QueryRow(ctx, query, id).Scan(&dependents, &deletedID); err != nil {
		if sqlerr.IsForeignKeyViolation(err) {
			return &DependentsError{Count: 1}
		}
		return err
	}

	if dependents > 0 {
		return &DependentsError{Count: dependents}
	}
	if deletedID == nil {
		return ErrNotFound
	}
	return nil
}

// deleteByID removes one row and reports ErrNotFound on a miss.
func deleteByID(ctx context.Context, db DBTX, t table, id int64) error {
	tag, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// notFound turns pgx.ErrNoRows into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// replaceCameraLinks rewrites one side of a camera junction table.
func replaceCameraLinks(ctx context.Context, db DBTX, junction table, ownerCol, otherCol column, ownerID int64, otherIDs []int64) error {
	if _, err := db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction, ownerCol), ownerID); err != nil {
		return err
	}
	return insertCameraLinks(ctx, db, junction, ownerCol, otherCol, ownerID, otherIDs)
}

func insertCameraLinks(ctx context.Context, db DBTX, junction table, ownerCol, otherCol column, ownerID int64, otherIDs []int64) error {
	if len(otherIDs) == 0 {
		return nil
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, other_id FROM UNNEST($2::bigint[]) AS other_id
		ON CONFLICT DO NOTHING`, junction, ownerCol, otherCol)

	_, err := db.Exec(ctx, query, ownerID, otherIDs)
	return err
}

const (
	junctionGroupMembers  table = "camera_group_members"
	junctionTagAssignment table = "camera_tag_assignments"

	colGroupID  column = "group_id"
	colTagID    column = "tag_id"
	colCameraID column = "camera_id"
)
