package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/scope/internal/db/driver"
)

func TestOpen_CreatesDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "scope.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, path, store.Path())
	assert.Equal(t, driver.DialectSQLite, store.Dialect())
	require.NoError(t, store.Ping(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewTestDB(t)

	require.NoError(t, store.Migrate(ctx))
	assert.Equal(t, 1, countRows(t, store, "SELECT COUNT(*) FROM _migrations"))
}

func TestReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewTestDB(t)

	seedProject(t, store, "P1")
	require.NoError(t, store.CreateUser(ctx, &User{ID: "u1", Username: "ana", PasswordHash: "x", IsActive: true}))

	require.NoError(t, store.Reset(ctx))

	assert.Zero(t, countRows(t, store, "SELECT COUNT(*) FROM projects"))
	assert.Zero(t, countRows(t, store, "SELECT COUNT(*) FROM kanban_columns"))
	assert.Zero(t, countRows(t, store, "SELECT COUNT(*) FROM users"))
	assert.Equal(t, 1, countRows(t, store, "SELECT COUNT(*) FROM _migrations"))

	// Schema is usable again.
	seedProject(t, store, "P1")
}

func TestRunInTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewTestDB(t)

	err := store.RunInTx(ctx, func(tx *TxOps) error {
		_, err := tx.Exec("INSERT INTO projects (id, name) VALUES (?, ?)", "P1", "kept")
		return err
	})
	require.NoError(t, err)

	sentinel := assert.AnError
	err = store.RunInTx(ctx, func(tx *TxOps) error {
		if _, err := tx.Exec("INSERT INTO projects (id, name) VALUES (?, ?)", "P2", "dropped"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	assert.Equal(t, 1, countRows(t, store, "SELECT COUNT(*) FROM projects"))
	_, err = store.GetProject(ctx, "P2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		zero bool
	}{
		{"2024-05-01 10:11:12.345", false},
		{"2024-05-01 10:11:12", false},
		{"2024-05-01T10:11:12.345678Z", false},
		{"2024-05-01T10:11:12+02:00", false},
		{"2024-05-01", false},
		{"yesterday", true},
		{"", true},
	}
	for _, tt := range tests {
		got := parseTimestamp(tt.in)
		assert.Equal(t, tt.zero, got.IsZero(), "parseTimestamp(%q)", tt.in)
	}
}
