package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"moneypulse/internal/database"
	"moneypulse/internal/logger"
	"moneypulse/internal/models"
)

// AccountRepository handles bank account database operations.
type AccountRepository struct {
	db database.PGXDB
}

var _ AccountStore = (*AccountRepository)(nil)

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db database.PGXDB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, name, bank_name, account_number, account_type, currency, balance, tags, created_at, updated_at`

func scanAccount(row pgx.Row) (*models.BankAccount, error) {
	var account models.BankAccount
	err := row.Scan(&account.ID, &account.Name, &account.BankName, &account.AccountNumber,
		&account.AccountType, &account.Currency, &account.Balance, &account.Tags,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// List retrieves all bank accounts ordered by bank name.
func (r *AccountRepository) List(ctx context.Context) ([]models.BankAccount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+` FROM bank_accounts ORDER BY bank_name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank accounts: %w", err)
	}
	return accounts, nil
}

// GetByID retrieves a bank account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int) (*models.BankAccount, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM bank_accounts WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	return account, nil
}

// Create adds a new bank account.
func (r *AccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO bank_accounts (name, bank_name, account_number, account_type, currency, balance, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, account.Name, account.BankName, account.AccountNumber, account.AccountType,
		account.Currency, account.Balance, account.Tags,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bank account: %w", err)
	}
	logger.Log.Info().
		Int("id", account.ID).
		Str("account_number", logger.MaskAccountNumber(account.AccountNumber)).
		Msg("bank account created")
	return nil
}

// Update replaces an existing bank account record.
func (r *AccountRepository) Update(ctx context.Context, account *models.BankAccount) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bank_accounts SET
			name = $2,
			bank_name = $3,
			account_number = $4,
			account_type = $5,
			currency = $6,
			balance = $7,
			tags = $8,
			updated_at = NOW()
		WHERE id = $1
	`, account.ID, account.Name, account.BankName, account.AccountNumber,
		account.AccountType, account.Currency, account.Balance, account.Tags)
	if err != nil {
		return fmt.Errorf("failed to update bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a bank account by ID.
func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bank account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
