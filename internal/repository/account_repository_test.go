package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"moneypulse/internal/database"
	"moneypulse/internal/models"
)

func setupAccountTest(t *testing.T) (*AccountRepository, context.Context) {
	t.Helper()

	pool := database.TestDB(t)
	database.CleanupTables(t, pool)
	return NewAccountRepository(pool), context.Background()
}

func testAccount(name, bank string) *models.BankAccount {
	return &models.BankAccount{
		Name:          name,
		BankName:      bank,
		AccountNumber: "1234567890",
		AccountType:   models.AccountTypeSavings,
		Currency:      "USD",
		Balance:       decimal.NewFromInt(1000),
		Tags:          "daily,salary",
	}
}

func TestAccountRepository_CreateAndGet(t *testing.T) {
	repo, ctx := setupAccountTest(t)

	account := testAccount("Salary", "DBS")
	require.NoError(t, repo.Create(ctx, account))
	require.NotZero(t, account.ID)
	require.False(t, account.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "DBS", fetched.BankName)
	require.Equal(t, "daily,salary", fetched.Tags)
	require.True(t, fetched.Balance.Equal(decimal.NewFromInt(1000)))

	_, err = repo.GetByID(ctx, 99999)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestAccountRepository_ListOrdering(t *testing.T) {
	repo, ctx := setupAccountTest(t)

	require.NoError(t, repo.Create(ctx, testAccount("Spending", "OCBC")))
	require.NoError(t, repo.Create(ctx, testAccount("Salary", "DBS")))

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	// Bank name ascending.
	require.Equal(t, "DBS", accounts[0].BankName)
	require.Equal(t, "OCBC", accounts[1].BankName)
}

func TestAccountRepository_Update(t *testing.T) {
	repo, ctx := setupAccountTest(t)

	account := testAccount("Salary", "DBS")
	require.NoError(t, repo.Create(ctx, account))

	t.Run("updates stored fields", func(t *testing.T) {
		account.Balance = decimal.NewFromFloat(-42.50)
		account.AccountType = models.AccountTypeCreditCard
		require.NoError(t, repo.Update(ctx, account))

		fetched, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		require.True(t, fetched.Balance.Equal(decimal.NewFromFloat(-42.50)))
		require.Equal(t, models.AccountTypeCreditCard, fetched.AccountType)
	})

	t.Run("returns ErrNotFound for non-existent account", func(t *testing.T) {
		missing := *account
		missing.ID = 99999
		require.ErrorIs(t, repo.Update(ctx, &missing), models.ErrNotFound)
	})
}

func TestAccountRepository_Delete(t *testing.T) {
	repo, ctx := setupAccountTest(t)

	account := testAccount("Salary", "DBS")
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.Delete(ctx, account.ID))
	_, err := repo.GetByID(ctx, account.ID)
	require.ErrorIs(t, err, models.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, account.ID), models.ErrNotFound)
}
