package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts PostgreSQL, applies the migrations and returns a pool.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("CAMFLEET_INTEGRATION") == "" {
		t.Skip("skipping integration test: CAMFLEET_INTEGRATION is not set")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("camfleet_test"),
		postgres.WithUsername("camfleet"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.Nop()
	cfg := &config.Config{Database: config.DatabaseConfig{URL: dsn}}
	require.NoError(t, database.Migrate(ctx, &logger, cfg))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func ptr[T any](v T) *T { return &v }

func TestRoleDeleteGuardedByUsers(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	role, err := repos.Roles.Create(ctx, pool, &model.CreateRoleRequest{Name: "operator"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), role.UsersCount)

	_, err = repos.SystemUsers.Create(ctx, pool, &model.CreateSystemUserRequest{
		FullName: "Op One",
		Email:    "op1@example.com",
		Login:    "op1",
		RoleID:   &role.ID,
	}, "hash")
	require.NoError(t, err)

	err = repos.Roles.Delete(ctx, pool, role.ID)
	var dependents *DependentsError
	require.ErrorAs(t, err, &dependents)
	assert.Equal(t, int64(1), dependents.Count)

	err = repos.Roles.Delete(ctx, pool, 999999)
	assert.ErrorIs(t, err, ErrNotFound)

	unused, err := repos.Roles.Create(ctx, pool, &model.CreateRoleRequest{
		Name: "guest", Permissions: []byte("null"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(unused.Permissions))

	require.NoError(t, repos.Roles.Delete(ctx, pool, unused.ID))
	_, err = repos.Roles.GetByID(ctx, pool, unused.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCameraGroupHierarchyAndMembership(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	camID, err := repos.Cameras.Create(ctx, pool, &model.CreateCameraRequest{
		Name: "Gate", Address: "Main st 1", Owner: "City",
		Lat: ptr(55.75), Lng: ptr(37.61),
		Status: model.CameraStatusActive, Resolution: "1920x1080",
		FPS: ptr(25), Traffic: ptr(decimal.RequireFromString("12.50")),
	})
	require.NoError(t, err)

	parentID, err := repos.CameraGroups.Create(ctx, pool, &model.CreateCameraGroupRequest{
		Name: "Center", CameraIDs: []int64{camID},
	})
	require.NoError(t, err)

	_, err = repos.CameraGroups.Create(ctx, pool, &model.CreateCameraGroupRequest{
		Name: "Center/North", ParentID: &parentID,
	})
	require.NoError(t, err)

	group, err := repos.CameraGroups.GetByID(ctx, pool, parentID)
	require.NoError(t, err)
	assert.Equal(t, []int64{camID}, group.CameraIDs)
	assert.Equal(t, int64(1), group.CameraCount)

	var dependents *DependentsError
	assert.ErrorAs(t, repos.CameraGroups.Delete(ctx, pool, parentID), &dependents)

	found, err := repos.CameraGroups.Update(ctx, pool, &model.UpdateCameraGroupRequest{
		ID: parentID, CameraIDs: model.Some([]int64{}),
	})
	require.NoError(t, err)
	assert.True(t, found)

	group, err = repos.CameraGroups.GetByID(ctx, pool, parentID)
	require.NoError(t, err)
	assert.Empty(t, group.CameraIDs)

	camera, err := repos.Cameras.GetByID(ctx, pool, camID)
	require.NoError(t, err)
	assert.Empty(t, camera.GroupIDs)
	assert.True(t, camera.Traffic.Equal(decimal.RequireFromString("12.5")))
}

func TestCameraFiltersAndStats(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	for _, c := range []model.CreateCameraRequest{
		{Name: "North gate", Address: "Lenina 1", Owner: "City", Status: "active", FPS: ptr(30), Traffic: ptr(decimal.NewFromInt(10))},
		{Name: "South gate", Address: "Lenina 2", Owner: "City", Status: "problem", FPS: ptr(20), Traffic: ptr(decimal.NewFromInt(5))},
		{Name: "Yard", Address: "Mira 7", Owner: "Private", Status: "inactive", FPS: ptr(25), Traffic: ptr(decimal.Zero)},
	} {
		c.Lat, c.Lng, c.Resolution = ptr(1.0), ptr(2.0), "1280x720"
		_, err := repos.Cameras.Create(ctx, pool, &c)
		require.NoError(t, err)
	}

	cams, err := repos.Cameras.List(ctx, pool, &model.CameraFilter{Search: "gate"})
	require.NoError(t, err)
	assert.Len(t, cams, 2)

	cams, err = repos.Cameras.List(ctx, pool, &model.CameraFilter{Owner: "City", Status: "problem"})
	require.NoError(t, err)
	require.Len(t, cams, 1)
	assert.Equal(t, "South gate", cams[0].Name)

	stats, err := repos.Cameras.Stats(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.Problem)
	assert.InDelta(t, 15.0, stats.TotalTraffic, 0.001)
	assert.InDelta(t, 25.0, stats.AvgFPS, 0.001)
	require.Len(t, stats.ByOwner, 2)
	assert.Equal(t, model.OwnerCount{Owner: "City", Count: 2}, stats.ByOwner[0])
	assert.Empty(t, stats.ByGroup)
}

func TestRegistryHidesCredentials(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	req := &model.CreateRegistryCameraRequest{
		Name: "Dock", RTSPURL: "rtsp://10.0.0.5/stream",
		RTSPLogin: ptr("admin"), RTSPPassword: ptr("secret"),
	}
	require.NoError(t, req.Validate())

	id, err := repos.Cameras.CreateRegistry(ctx, pool, req)
	require.NoError(t, err)

	cam, err := repos.Cameras.GetRegistryByID(ctx, pool, id)
	require.NoError(t, err)
	assert.Equal(t, model.CameraStatusActive, cam.Status)
	assert.Equal(t, 30, cam.ArchiveDepthDays)

	found, err := repos.Cameras.UpdateRegistry(ctx, pool, &model.UpdateRegistryCameraRequest{
		ID: id, Description: model.Some("loading bay"),
	})
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repos.Cameras.UpdateRegistry(ctx, pool, &model.UpdateRegistryCameraRequest{ID: id + 100})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	userID, err := repos.SystemUsers.Create(ctx, pool, &model.CreateSystemUserRequest{
		FullName: "Admin", Email: "admin@example.com", Login: "admin",
	}, "hash")
	require.NoError(t, err)

	expiresAt := func() time.Time {
		t.Helper()
		var at time.Time
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT expires_at FROM user_sessions WHERE session_token = $1`, "tok-1").Scan(&at))
		return at
	}

	req := &model.UpsertSessionRequest{UserID: userID, SessionToken: "tok-1", CurrentRoute: "/"}
	first, err := repos.Sessions.Upsert(ctx, pool, req, time.Hour)
	require.NoError(t, err)
	firstExpiry := expiresAt()

	time.Sleep(10 * time.Millisecond)

	req.CurrentRoute = "/cameras"
	second, err := repos.Sessions.Upsert(ctx, pool, req, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, expiresAt().After(firstExpiry))

	var rows int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_sessions WHERE session_token = $1`, "tok-1").Scan(&rows))
	assert.Equal(t, 1, rows)

	sessions, err := repos.Sessions.ListActive(ctx, pool)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "/cameras", sessions[0].CurrentRoute)
	assert.Equal(t, "admin", sessions[0].Login)

	got, err := repos.Sessions.UserIDByToken(ctx, pool, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	ended, err := repos.Sessions.End(ctx, pool, "tok-1")
	require.NoError(t, err)
	assert.True(t, ended)

	sessions, err = repos.Sessions.ListActive(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	purged, err := repos.Sessions.PurgeExpired(ctx, pool, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)

	purged, err = repos.Sessions.PurgeExpired(ctx, pool, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestSystemUserPasswordOnlyOnDemand(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	id, err := repos.SystemUsers.Create(ctx, pool, &model.CreateSystemUserRequest{
		FullName: "Viewer", Email: "v@example.com", Login: "viewer",
	}, "original")
	require.NoError(t, err)

	found, err := repos.SystemUsers.Update(ctx, pool, &model.UpdateSystemUserRequest{
		ID: id, Note: model.Some("night shift"),
	}, "")
	require.NoError(t, err)
	assert.True(t, found)

	user, err := repos.SystemUsers.GetByLogin(ctx, pool, "viewer")
	require.NoError(t, err)
	assert.Equal(t, "original", user.PasswordHash)
	assert.Equal(t, "night shift", user.Note)
	assert.JSONEq(t, `[]`, string(user.AttachedFiles))

	require.NoError(t, repos.SystemUsers.MarkLoggedIn(ctx, pool, id))
	user, err = repos.SystemUsers.GetByID(ctx, pool, id)
	require.NoError(t, err)
	assert.True(t, user.IsOnline)
	assert.NotNil(t, user.LastLogin)

	_, err = repos.SystemUsers.GetByLogin(ctx, pool, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithTxRollsBackJunctionWrites(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repos := NewRepositories(nil)

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	require.NoError(t, err)
	_, err = repos.Cameras.Create(ctx, tx, &model.CreateCameraRequest{
		Name: "Ghost", Address: "x", Owner: "y", Lat: ptr(0.0), Lng: ptr(0.0),
		Status: "active", FPS: ptr(25), Traffic: ptr(decimal.Zero),
		GroupIDs: []int64{424242},
	})
	require.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))

	cams, err := repos.Cameras.List(ctx, pool, &model.CameraFilter{})
	require.NoError(t, err)
	assert.Empty(t, cams)
}
