package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"moneypulse/internal/database"
	"moneypulse/internal/models"
)

// BudgetRepository handles budget database operations. It takes a full pool
// because budget activation is transactional.
type BudgetRepository struct {
	db database.Pool
}

var _ BudgetStore = (*BudgetRepository)(nil)

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(db database.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

const budgetColumns = `id, month, year, categories, total_budget, is_active, created_at, updated_at`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var budget models.Budget
	var categoriesJSON []byte
	err := row.Scan(&budget.ID, &budget.Month, &budget.Year, &categoriesJSON,
		&budget.TotalBudget, &budget.IsActive, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, err
	}
	budget.Categories = map[string]decimal.Decimal{}
	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &budget.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode budget categories: %w", err)
		}
	}
	return &budget, nil
}

// List retrieves all budgets, newest year first.
func (r *BudgetRepository) List(ctx context.Context) ([]models.Budget, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets ORDER BY year DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// GetByID retrieves a budget by ID.
func (r *BudgetRepository) GetByID(ctx context.Context, id int) (*models.Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// GetActive retrieves the single active budget.
func (r *BudgetRepository) GetActive(ctx context.Context) (*models.Budget, error) {
	budget, err := scanBudget(r.db.QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE is_active LIMIT 1
	`))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active budget: %w", err)
	}
	return budget, nil
}

// Create adds a new budget and makes it active. Deactivating prior budgets
// and inserting the new active one happen in one transaction so the
// single-active-budget invariant holds even across failures.
func (r *BudgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	categoriesJSON, err := json.Marshal(budget.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode budget categories: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `UPDATE budgets SET is_active = FALSE, updated_at = NOW() WHERE is_active`); err != nil {
		return fmt.Errorf("failed to deactivate budgets: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO budgets (month, year, categories, total_budget, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at, updated_at
	`, budget.Month, budget.Year, categoriesJSON, budget.TotalBudget,
	).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	budget.IsActive = true

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit budget create: %w", err)
	}
	return nil
}

// Update replaces an existing budget record. Activation state is managed via
// Activate, not here.
func (r *BudgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	categoriesJSON, err := json.Marshal(budget.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode budget categories: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE budgets SET
			month = $2,
			year = $3,
			categories = $4,
			total_budget = $5,
			updated_at = NOW()
		WHERE id = $1
	`, budget.ID, budget.Month, budget.Year, categoriesJSON, budget.TotalBudget)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a budget by ID.
func (r *BudgetRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Activate marks the given budget active and deactivates all others in one
// transaction.
func (r *BudgetRepository) Activate(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `UPDATE budgets SET is_active = FALSE, updated_at = NOW() WHERE is_active AND id <> $1`, id); err != nil {
		return fmt.Errorf("failed to deactivate budgets: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE budgets SET is_active = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit budget activation: %w", err)
	}
	return nil
}
