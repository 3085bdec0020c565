// Package memstore provides in-memory implementations of the repository
// store interfaces. They back handler tests and local development without a
// database; state is injected, never a bare package-level collection.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
	"moneypulse/internal/report"
	"moneypulse/internal/repository"
)

// Expenses is an in-memory repository.ExpenseStore.
type Expenses struct {
	mu     sync.Mutex
	items  map[int]models.Expense
	nextID int
}

var _ repository.ExpenseStore = (*Expenses)(nil)

// NewExpenses creates an empty in-memory expense store.
func NewExpenses() *Expenses {
	return &Expenses{items: map[int]models.Expense{}, nextID: 1}
}

// List returns all expenses, newest date first.
func (s *Expenses) List(_ context.Context) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses := make([]models.Expense, 0, len(s.items))
	for _, exp := range s.items {
		expenses = append(expenses, exp)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

// GetByID returns the expense with the given ID.
func (s *Expenses) GetByID(_ context.Context, id int) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &exp, nil
}

// Create assigns an ID and timestamps and stores the expense.
func (s *Expenses) Create(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense.ID = s.nextID
	s.nextID++
	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	s.items[expense.ID] = *expense
	return nil
}

// Update replaces a stored expense.
func (s *Expenses) Update(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[expense.ID]
	if !ok {
		return models.ErrNotFound
	}
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = time.Now()
	s.items[expense.ID] = *expense
	return nil
}

// Delete removes a stored expense.
func (s *Expenses) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Budgets is an in-memory repository.BudgetStore.
type Budgets struct {
	mu     sync.Mutex
	items  map[int]models.Budget
	nextID int
}

var _ repository.BudgetStore = (*Budgets)(nil)

// NewBudgets creates an empty in-memory budget store.
func NewBudgets() *Budgets {
	return &Budgets{items: map[int]models.Budget{}, nextID: 1}
}

// List returns all budgets, newest year first.
func (s *Budgets) List(_ context.Context) ([]models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	budgets := make([]models.Budget, 0, len(s.items))
	for _, budget := range s.items {
		budgets = append(budgets, budget)
	}
	sort.SliceStable(budgets, func(i, j int) bool {
		if budgets[i].Year != budgets[j].Year {
			return budgets[i].Year > budgets[j].Year
		}
		return budgets[i].ID > budgets[j].ID
	})
	return budgets, nil
}

// GetByID returns the budget with the given ID.
func (s *Budgets) GetByID(_ context.Context, id int) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	budget, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &budget, nil
}

// GetActive returns the active budget, or models.ErrNotFound.
func (s *Budgets) GetActive(_ context.Context) (*models.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, budget := range s.items {
		if budget.IsActive {
			return &budget, nil
		}
	}
	return nil, models.ErrNotFound
}

// Create stores the budget as the new active budget, deactivating the rest.
func (s *Budgets) Create(_ context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateAllLocked()
	budget.ID = s.nextID
	s.nextID++
	now := time.Now()
	budget.CreatedAt = now
	budget.UpdatedAt = now
	budget.IsActive = true
	s.items[budget.ID] = *budget
	return nil
}

// Update replaces a stored budget without touching activation state.
func (s *Budgets) Update(_ context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[budget.ID]
	if !ok {
		return models.ErrNotFound
	}
	budget.CreatedAt = existing.CreatedAt
	budget.IsActive = existing.IsActive
	budget.UpdatedAt = time.Now()
	s.items[budget.ID] = *budget
	return nil
}

// Delete removes a stored budget.
func (s *Budgets) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Activate marks one budget active and deactivates every other.
func (s *Budgets) Activate(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	budget, ok := s.items[id]
	if !ok {
		return models.ErrNotFound
	}
	s.deactivateAllLocked()
	budget.IsActive = true
	budget.UpdatedAt = time.Now()
	s.items[id] = budget
	return nil
}

func (s *Budgets) deactivateAllLocked() {
	for id, budget := range s.items {
		if budget.IsActive {
			budget.IsActive = false
			s.items[id] = budget
		}
	}
}

// Goals is an in-memory repository.GoalStore.
type Goals struct {
	mu     sync.Mutex
	items  map[int]models.Goal
	nextID int
}

var _ repository.GoalStore = (*Goals)(nil)

// NewGoals creates an empty in-memory goal store.
func NewGoals() *Goals {
	return &Goals{items: map[int]models.Goal{}, nextID: 1}
}

// List returns all goals ordered by priority, then soonest deadline.
func (s *Goals) List(_ context.Context) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals := make([]models.Goal, 0, len(s.items))
	for _, goal := range s.items {
		goals = append(goals, goal)
	}
	return report.SortGoals(goals), nil
}

// GetByID returns the goal with the given ID.
func (s *Goals) GetByID(_ context.Context, id int) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &goal, nil
}

// Create assigns an ID and timestamps and stores the goal.
func (s *Goals) Create(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.nextID
	s.nextID++
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	s.items[goal.ID] = *goal
	return nil
}

// Update replaces a stored goal.
func (s *Goals) Update(_ context.Context, goal *models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[goal.ID]
	if !ok {
		return models.ErrNotFound
	}
	goal.CreatedAt = existing.CreatedAt
	goal.UpdatedAt = time.Now()
	s.items[goal.ID] = *goal
	return nil
}

// Delete removes a stored goal.
func (s *Goals) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// AddContribution validates the target cap and adds to the current amount.
func (s *Goals) AddContribution(_ context.Context, id int, amount decimal.Decimal) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	updated, err := report.ApplyGoalContribution(goal, amount)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()
	s.items[id] = updated
	return &updated, nil
}

// Accounts is an in-memory repository.AccountStore.
type Accounts struct {
	mu     sync.Mutex
	items  map[int]models.BankAccount
	nextID int
}

var _ repository.AccountStore = (*Accounts)(nil)

// NewAccounts creates an empty in-memory bank account store.
func NewAccounts() *Accounts {
	return &Accounts{items: map[int]models.BankAccount{}, nextID: 1}
}

// List returns all accounts ordered by bank name.
func (s *Accounts) List(_ context.Context) ([]models.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := make([]models.BankAccount, 0, len(s.items))
	for _, account := range s.items {
		accounts = append(accounts, account)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].BankName != accounts[j].BankName {
			return accounts[i].BankName < accounts[j].BankName
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

// GetByID returns the account with the given ID.
func (s *Accounts) GetByID(_ context.Context, id int) (*models.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &account, nil
}

// Create assigns an ID and timestamps and stores the account.
func (s *Accounts) Create(_ context.Context, account *models.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account.ID = s.nextID
	s.nextID++
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	s.items[account.ID] = *account
	return nil
}

// Update replaces a stored account.
func (s *Accounts) Update(_ context.Context, account *models.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[account.ID]
	if !ok {
		return models.ErrNotFound
	}
	account.CreatedAt = existing.CreatedAt
	account.UpdatedAt = time.Now()
	s.items[account.ID] = *account
	return nil
}

// Delete removes a stored account.
func (s *Accounts) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Profiles is an in-memory repository.ProfileStore holding a single profile.
type Profiles struct {
	mu      sync.Mutex
	profile models.Profile
}

var _ repository.ProfileStore = (*Profiles)(nil)

// NewProfiles creates an in-memory profile store with a default profile.
func NewProfiles() *Profiles {
	now := time.Now()
	return &Profiles{profile: models.Profile{
		ID:        1,
		Currency:  models.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// Get returns the profile.
func (s *Profiles) Get(_ context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile := s.profile
	return &profile, nil
}

// Update replaces the profile.
func (s *Profiles) Update(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID != s.profile.ID {
		return models.ErrNotFound
	}
	profile.CreatedAt = s.profile.CreatedAt
	profile.UpdatedAt = time.Now()
	s.profile = *profile
	return nil
}
