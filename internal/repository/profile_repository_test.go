package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"moneypulse/internal/database"
	"moneypulse/internal/models"
)

func TestProfileRepository(t *testing.T) {
	pool := database.TestDB(t)
	database.CleanupTables(t, pool)

	repo := NewProfileRepository(pool)
	ctx := context.Background()

	t.Run("empty table is ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("seed is idempotent and readable", func(t *testing.T) {
		require.NoError(t, database.SeedProfile(ctx, pool, "USD"))
		require.NoError(t, database.SeedProfile(ctx, pool, "EUR"))

		profile, err := repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "USD", profile.Currency)
	})

	t.Run("update replaces profile fields", func(t *testing.T) {
		profile, err := repo.Get(ctx)
		require.NoError(t, err)

		profile.Name = "Alex"
		profile.Website = "https://example.com"
		require.NoError(t, repo.Update(ctx, profile))

		fetched, err := repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "Alex", fetched.Name)
		require.Equal(t, "https://example.com", fetched.Website)
	})

	t.Run("update of unknown row is ErrNotFound", func(t *testing.T) {
		profile, err := repo.Get(ctx)
		require.NoError(t, err)

		profile.ID = 99999
		require.ErrorIs(t, repo.Update(ctx, profile), models.ErrNotFound)
	})
}
