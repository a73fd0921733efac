package service

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/camfleet/internal/config"
	"github.com/deppfellow/camfleet/internal/database"
	"github.com/deppfellow/camfleet/internal/lib/password"
	"github.com/deppfellow/camfleet/internal/model"
	"github.com/deppfellow/camfleet/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *database.Database {
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
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &logger, &config.Config{Database: config.DatabaseConfig{URL: dsn}}))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return &database.Database{Pool: pool}
}

type recordingEnqueuer struct {
	logins []string
}

func (r *recordingEnqueuer) EnqueueWelcomeEmail(_ context.Context, _, _, login string) error {
	r.logins = append(r.logins, login)
	return nil
}

func TestLoginFlow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	repos := repository.NewRepositories(&logger)
	welcome := &recordingEnqueuer{}

	users := NewSystemUserService(db, repos.SystemUsers, password.NewHasher("bcrypt"), welcome, &logger)
	auth := NewAuthService(db, repos.SystemUsers, &logger)

	created, err := users.Create(ctx, &model.CreateSystemUserRequest{
		FullName: "Admin", Email: "admin@example.com", Login: "admin", Password: "admin123",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, welcome.logins)
	assert.False(t, created.IsOnline)

	_, err = auth.Login(ctx, &model.LoginRequest{Login: "admin", Password: "wrong"})
	requireHTTPError(t, err, http.StatusUnauthorized, "invalid login or password")

	user, err := users.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, user.IsOnline)
	assert.Nil(t, user.LastLogin)

	_, err = auth.Login(ctx, &model.LoginRequest{Login: "ghost", Password: "admin123"})
	requireHTTPError(t, err, http.StatusUnauthorized, "invalid login or password")

	resp, err := auth.Login(ctx, &model.LoginRequest{Login: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, created.ID, resp.User.ID)

	user, err = users.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, user.IsOnline)
	assert.NotNil(t, user.LastLogin)
}

func TestDeleteMessages(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	repos := repository.NewRepositories(&logger)

	roles := NewRoleService(db, repos.Roles)
	users := NewSystemUserService(db, repos.SystemUsers, password.NewHasher("sha256"), nil, &logger)
	owners := NewCameraOwnerService(db, repos.CameraOwners)

	role, err := roles.Create(ctx, &model.CreateRoleRequest{Name: "viewer"})
	require.NoError(t, err)
	for _, login := range []string{"a", "b"} {
		_, err := users.Create(ctx, &model.CreateSystemUserRequest{
			FullName: login, Email: login + "@example.com", Login: login, Password: "pw", RoleID: &role.ID,
		})
		require.NoError(t, err)
	}

	_, err = roles.Delete(ctx, role.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "Cannot delete role with 2 assigned users")

	_, err = roles.Delete(ctx, role.ID+1000)
	requireHTTPError(t, err, http.StatusNotFound, "Role not found")

	parent, err := owners.Create(ctx, &model.CreateCameraOwnerRequest{Name: "City"})
	require.NoError(t, err)
	_, err = owners.Create(ctx, &model.CreateCameraOwnerRequest{Name: "District", ParentID: &parent.ID})
	require.NoError(t, err)

	_, err = owners.Delete(ctx, parent.ID)
	requireHTTPError(t, err, http.StatusBadRequest, "Cannot delete owner with children")

	_, err = users.Delete(ctx, 999999)
	requireHTTPError(t, err, http.StatusNotFound, "User not found")
}

func TestTerritorialDivisionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	divisions := NewTerritorialDivisionService(db, repository.NewRepositories(&logger).TerritorialDivisions)

	req := &model.CreateTerritorialDivisionRequest{Name: "North Sector"}
	require.NoError(t, req.Validate())

	created, err := divisions.Create(ctx, req)
	require.NoError(t, err)
	require.Positive(t, created.ID)

	got, err := divisions.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Sector", got.Name)
	assert.Equal(t, int64(0), got.CameraCount)
	assert.Nil(t, got.ParentID)
	assert.Equal(t, model.DefaultDivisionColor, got.Color)

	updated, err := divisions.Update(ctx, &model.UpdateTerritorialDivisionRequest{
		ID: created.ID, Name: model.Some("North Sector 2"), CameraCount: model.Some(int64(4)),
	})
	require.NoError(t, err)
	assert.Equal(t, "North Sector 2", updated.Name)
	assert.Equal(t, int64(4), updated.CameraCount)

	resp, err := divisions.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.ID)
	assert.Equal(t, created.ID, *resp.ID)

	_, err = divisions.Get(ctx, created.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Division not found")
}

func TestRoleDeleteWithoutUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	roles := NewRoleService(db, repository.NewRepositories(&logger).Roles)

	role, err := roles.Create(ctx, &model.CreateRoleRequest{Name: "auditor"})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(role.Permissions))

	resp, err := roles.Delete(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, "Role deleted successfully", resp.Message)

	_, err = roles.Get(ctx, role.ID)
	requireHTTPError(t, err, http.StatusNotFound, "Role not found")
}

func TestUserGroupDeleteBlockedByChildren(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	groups := NewUserGroupService(db, repository.NewRepositories(&logger).UserGroups)

	parent, err := groups.Create(ctx, &model.CreateUserGroupRequest{Name: "Operators"})
	require.NoError(t, err)
	child, err := groups.Create(ctx, &model.CreateUserGroupRequest{Name: "Night shift", ParentID: &parent.ID})
	require.NoError(t, err)

	_, err = groups.Delete(ctx, parent.ID)
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, "Cannot delete group with children")
	assert.Equal(t, "USER_GROUP_HAS_DEPENDENTS", httpErr.Code)

	still, err := groups.Get(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Operators", still.Name)

	_, err = groups.Delete(ctx, child.ID)
	require.NoError(t, err)
	_, err = groups.Delete(ctx, parent.ID)
	require.NoError(t, err)
}
