package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIDFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		ids    []string
		want   string
	}{
		{"empty", "T", nil, "T1"},
		{"ignores non-numeric suffix", "T", []string{"T3", "T7", "Txyz"}, "T8"},
		{"no match", "S", []string{"sprint-a", "X9"}, "S1"},
		{"numeric not lexical", "P", []string{"P9", "P10", "P2"}, "P11"},
		{"rejects trailing text", "R", []string{"R5a", "R2"}, "R3"},
		{"column prefix", "P1-C", []string{"P1-C1", "P1-C4", "P10-C9"}, "P1-C5"},
		{"regex metacharacters in prefix", "a.b-C", []string{"axb-C7", "a.b-C2"}, "a.b-C3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, nextIDFrom(tt.prefix, tt.ids))
		})
	}
}

func TestNextID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewTestDB(t)

	_, err := store.NextID(ctx, "X", "")
	require.ErrorIs(t, err, ErrInvalidPrefix)

	_, err = store.NextID(ctx, "", "")
	require.ErrorIs(t, err, ErrInvalidPrefix)

	for _, prefix := range []string{"P", "T", "S", "R", "M"} {
		id, err := store.NextID(ctx, prefix, "")
		require.NoError(t, err)
		assert.Equal(t, prefix+"1", id)
	}

	require.NoError(t, store.CreateProject(ctx, &Project{ID: "P1", Name: "Alpha", Status: "active"}))
	require.NoError(t, store.CreateProject(ctx, &Project{ID: "P2", Name: "Beta", Status: "active"}))
	for _, task := range []*Task{
		{ID: "T3", ProjectID: "P1", Title: "a", Status: "todo", Priority: "medium"},
		{ID: "T7", ProjectID: "P1", Title: "b", Status: "todo", Priority: "medium"},
		{ID: "Txyz", ProjectID: "P1", Title: "c", Status: "todo", Priority: "medium"},
		{ID: "T12", ProjectID: "P2", Title: "d", Status: "todo", Priority: "medium"},
	} {
		require.NoError(t, store.CreateTask(ctx, task))
	}

	id, err := store.NextID(ctx, "P", "")
	require.NoError(t, err)
	assert.Equal(t, "P3", id)

	id, err = store.NextID(ctx, "T", "")
	require.NoError(t, err)
	assert.Equal(t, "T13", id, "unscoped allocation considers every project")

	id, err = store.NextID(ctx, "T", "P1")
	require.NoError(t, err)
	assert.Equal(t, "T8", id)

	id, err = store.NextID(ctx, "T", "P404")
	require.NoError(t, err)
	assert.Equal(t, "T1", id)

	// Projects are never scoped.
	id, err = store.NextID(ctx, "P", "P1")
	require.NoError(t, err)
	assert.Equal(t, "P3", id)
}

func TestValidPrefix(t *testing.T) {
	t.Parallel()
	assert.True(t, ValidPrefix("M"))
	assert.False(t, ValidPrefix("C"))
	assert.False(t, ValidPrefix("p"))
}
