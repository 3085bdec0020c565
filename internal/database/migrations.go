package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the database schema.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS expenses (
			id SERIAL PRIMARY KEY,
			amount DECIMAL(12, 2) NOT NULL CHECK (amount >= 0),
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS budgets (
			id SERIAL PRIMARY KEY,
			month TEXT NOT NULL,
			year INTEGER NOT NULL,
			categories JSONB NOT NULL DEFAULT '{}',
			total_budget DECIMAL(12, 2) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS goals (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			target_amount DECIMAL(12, 2) NOT NULL CHECK (target_amount > 0),
			current_amount DECIMAL(12, 2) NOT NULL DEFAULT 0 CHECK (current_amount >= 0),
			deadline DATE NOT NULL,
			priority INTEGER NOT NULL DEFAULT 2,
			category TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bank_accounts (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			bank_name TEXT NOT NULL,
			account_number TEXT NOT NULL,
			account_type TEXT NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			balance DECIMAL(14, 2) NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			currency TEXT NOT NULL DEFAULT 'USD',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_is_active ON budgets(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_goals_priority ON goals(priority, deadline)`,

		// Uniqueness of the active budget is enforced at the storage level as
		// well: activation happens in one transaction, and this partial index
		// rejects a second active row even if application code regresses.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_budgets_single_active ON budgets(is_active) WHERE is_active`,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

// SeedProfile inserts the default profile row if none exists.
func SeedProfile(ctx context.Context, pool *pgxpool.Pool, currency string) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO profiles (name, currency)
		SELECT '', $1
		WHERE NOT EXISTS (SELECT 1 FROM profiles)
	`, currency)
	if err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}
	return nil
}
