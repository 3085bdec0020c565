// Package repository provides per-entity storage over PostgreSQL. Store
// interfaces let the HTTP layer run against either the pgx implementations
// here or the in-memory fakes in memstore.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
)

// ExpenseStore is the persistence port for expenses.
type ExpenseStore interface {
	List(ctx context.Context) ([]models.Expense, error)
	GetByID(ctx context.Context, id int) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id int) error
}

// BudgetStore is the persistence port for budgets.
type BudgetStore interface {
	List(ctx context.Context) ([]models.Budget, error)
	GetByID(ctx context.Context, id int) (*models.Budget, error)
	// GetActive returns the single active budget, or models.ErrNotFound when
	// no budget is active.
	GetActive(ctx context.Context) (*models.Budget, error)
	Create(ctx context.Context, budget *models.Budget) error
	Update(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, id int) error
	// Activate marks the given budget active and deactivates every other
	// budget atomically.
	Activate(ctx context.Context, id int) error
}

// GoalStore is the persistence port for savings goals.
type GoalStore interface {
	List(ctx context.Context) ([]models.Goal, error)
	GetByID(ctx context.Context, id int) (*models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Update(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, id int) error
	// AddContribution adds to the goal's current amount after validating the
	// target cap, and returns the updated goal.
	AddContribution(ctx context.Context, id int, amount decimal.Decimal) (*models.Goal, error)
}

// AccountStore is the persistence port for bank accounts.
type AccountStore interface {
	List(ctx context.Context) ([]models.BankAccount, error)
	GetByID(ctx context.Context, id int) (*models.BankAccount, error)
	Create(ctx context.Context, account *models.BankAccount) error
	Update(ctx context.Context, account *models.BankAccount) error
	Delete(ctx context.Context, id int) error
}

// ProfileStore is the persistence port for the user profile.
type ProfileStore interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}
