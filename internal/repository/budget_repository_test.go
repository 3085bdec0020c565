package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"moneypulse/internal/database"
	"moneypulse/internal/models"
)

func setupBudgetTest(t *testing.T) (*BudgetRepository, context.Context) {
	t.Helper()

	pool := database.TestDB(t)
	database.CleanupTables(t, pool)
	return NewBudgetRepository(pool), context.Background()
}

func testBudget(month string) *models.Budget {
	return &models.Budget{
		Month: month,
		Year:  2026,
		Categories: map[string]decimal.Decimal{
			"Food & Dining":  decimal.NewFromInt(400),
			"Transportation": decimal.NewFromInt(150),
		},
		TotalBudget: decimal.NewFromInt(1500),
	}
}

func TestBudgetRepository_Create(t *testing.T) {
	repo, ctx := setupBudgetTest(t)

	budget := testBudget("March")
	require.NoError(t, repo.Create(ctx, budget))
	require.NotZero(t, budget.ID)
	require.True(t, budget.IsActive)

	t.Run("categories survive the JSONB round trip", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, budget.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Categories, 2)
		require.True(t, fetched.Categories["Food & Dining"].Equal(decimal.NewFromInt(400)))
	})

	t.Run("creating another budget deactivates the first", func(t *testing.T) {
		second := testBudget("April")
		require.NoError(t, repo.Create(ctx, second))

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.Equal(t, second.ID, active.ID)

		first, err := repo.GetByID(ctx, budget.ID)
		require.NoError(t, err)
		require.False(t, first.IsActive)
	})
}

func TestBudgetRepository_GetActive(t *testing.T) {
	repo, ctx := setupBudgetTest(t)

	t.Run("no budgets is ErrNotFound", func(t *testing.T) {
		_, err := repo.GetActive(ctx)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("returns the active budget", func(t *testing.T) {
		budget := testBudget("March")
		require.NoError(t, repo.Create(ctx, budget))

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.Equal(t, budget.ID, active.ID)
	})
}

func TestBudgetRepository_Activate(t *testing.T) {
	repo, ctx := setupBudgetTest(t)

	first := testBudget("February")
	second := testBudget("March")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	t.Run("moves the active flag in one step", func(t *testing.T) {
		require.NoError(t, repo.Activate(ctx, first.ID))

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.Equal(t, first.ID, active.ID)

		budgets, err := repo.List(ctx)
		require.NoError(t, err)
		activeCount := 0
		for _, b := range budgets {
			if b.IsActive {
				activeCount++
			}
		}
		require.Equal(t, 1, activeCount)
	})

	t.Run("activating an already-active budget keeps it active", func(t *testing.T) {
		require.NoError(t, repo.Activate(ctx, first.ID))

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.Equal(t, first.ID, active.ID)
	})

	t.Run("unknown budget is ErrNotFound and keeps current state", func(t *testing.T) {
		require.ErrorIs(t, repo.Activate(ctx, 99999), models.ErrNotFound)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.Equal(t, first.ID, active.ID)
	})
}

func TestBudgetRepository_Update(t *testing.T) {
	repo, ctx := setupBudgetTest(t)

	budget := testBudget("March")
	require.NoError(t, repo.Create(ctx, budget))

	t.Run("updates limits without touching activation", func(t *testing.T) {
		budget.TotalBudget = decimal.NewFromInt(1800)
		budget.Categories["Entertainment"] = decimal.NewFromInt(100)
		require.NoError(t, repo.Update(ctx, budget))

		fetched, err := repo.GetByID(ctx, budget.ID)
		require.NoError(t, err)
		require.True(t, fetched.TotalBudget.Equal(decimal.NewFromInt(1800)))
		require.Len(t, fetched.Categories, 3)
		require.True(t, fetched.IsActive)
	})

	t.Run("returns ErrNotFound for non-existent budget", func(t *testing.T) {
		missing := testBudget("May")
		missing.ID = 99999
		require.ErrorIs(t, repo.Update(ctx, missing), models.ErrNotFound)
	})
}

func TestBudgetRepository_Delete(t *testing.T) {
	repo, ctx := setupBudgetTest(t)

	budget := testBudget("March")
	require.NoError(t, repo.Create(ctx, budget))

	require.NoError(t, repo.Delete(ctx, budget.ID))
	_, err := repo.GetByID(ctx, budget.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, budget.ID), models.ErrNotFound)
}
