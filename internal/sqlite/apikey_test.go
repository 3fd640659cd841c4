package sqlite

import (
	"context"
	"strings"
	"testing"

	"github.com/rpggio/costtrack/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAPIKeyRepository(db)

	token, err := repo.Create(ctx, "site-office")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(token, "ct_"))

	label, err := repo.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "site-office", label)

	_, err = repo.Resolve(ctx, "ct_wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Add(ctx, token, "again"), repository.ErrDuplicateID)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT key_hash FROM api_keys`).Scan(&stored))
	require.Equal(t, HashToken(token), stored)
	require.NotContains(t, stored, token)

	_, err = repo.Create(ctx, "")
	require.Error(t, err)
}
