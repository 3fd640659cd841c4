package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/costtrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_SaveLoad(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewKVRepository(db)

	_, err := repo.Load(ctx, "megacost_v2", "projects")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Save(ctx, "megacost_v2", "projects", []byte(`[{"id":"1"}]`)))
	data, err := repo.Load(ctx, "megacost_v2", "projects")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"1"}]`, string(data))

	// full overwrite
	require.NoError(t, repo.Save(ctx, "megacost_v2", "projects", []byte(`[]`)))
	data, err = repo.Load(ctx, "megacost_v2", "projects")
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	// namespaces are isolated
	_, err = repo.Load(ctx, "megacost_v1", "projects")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKVRepository_Keys(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewKVRepository(db)

	require.NoError(t, repo.Save(ctx, "ns", "labor", []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, "ns", "expenses", []byte(`[]`)))
	require.NoError(t, repo.Save(ctx, "other", "projects", nil))

	keys, err := repo.Keys(ctx, "ns")
	require.NoError(t, err)
	require.Equal(t, []string{"expenses", "labor"}, keys)
}
