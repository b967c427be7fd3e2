//go:build container

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/randalmurphal/scope/internal/db/driver"
)

// newPostgresTestDB starts a throwaway PostgreSQL container and returns a
// migrated store connected to it.
func newPostgresTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "scope",
			"POSTGRES_PASSWORD": "scope",
			"POSTGRES_DB":       "scope",
		},
		// The server logs readiness twice: once for the init run, once for real.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90 * time.Second),
	}
	pg, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://scope:scope@%s:%s/scope?sslmode=disable", host, port.Port())
	store, err := OpenWithDialect(dsn, driver.DialectPostgres, Options{MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestPostgres_ProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newPostgresTestDB(t)

	require.NoError(t, store.CreateProject(ctx, &Project{ID: "P1", Name: "Alpha", Status: "active"}))

	err := store.CreateProject(ctx, &Project{ID: "P1", Name: "Again", Status: "active"})
	require.Error(t, err)
	assert.True(t, store.IsUniqueViolation(err), "duplicate id should be SQLSTATE 23505: %v", err)

	cols, err := store.ListColumns(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, cols, 4)
	assert.Equal(t, "To Do", cols[0].Name)
	assert.True(t, cols[3].IsDefault)

	require.NoError(t, store.CreateTask(ctx, &Task{ID: "T1", ProjectID: "P1", Title: "first", Status: "todo", Priority: "medium"}))
	require.NoError(t, store.CreateSprint(ctx, &Sprint{ID: "S1", ProjectID: "P1", Name: "one", StartDate: "2024-01-01", EndDate: "2024-01-14", Status: "planning"}))
	require.NoError(t, store.AddTaskToSprint(ctx, "S1", "T1"))
	require.NoError(t, store.AddTaskToSprint(ctx, "S1", "T1"))

	p, err := store.GetProject(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.TaskCount)
	assert.Equal(t, 1, p.SprintCount)
	assert.False(t, p.CreatedAt.IsZero(), "timestamptz should parse")

	before := p.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.UpdateProject(ctx, &Project{ID: "P1", Name: "Alpha", Status: "done"}))
	p, err = store.GetProject(ctx, "P1")
	require.NoError(t, err)
	assert.True(t, p.UpdatedAt.After(before))

	id, err := store.NextID(ctx, "T", "P1")
	require.NoError(t, err)
	assert.Equal(t, "T2", id)

	col, err := store.CreateColumn(ctx, "P1", "Review", nil)
	require.NoError(t, err)
	assert.Equal(t, "P1-C5", col.ID)

	require.NoError(t, store.DeleteProject(ctx, "P1"))
	assert.ErrorIs(t, store.DeleteProject(ctx, "P1"), ErrNotFound)

	require.NoError(t, store.Reset(ctx))
	list, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
