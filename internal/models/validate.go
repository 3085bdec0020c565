package models

import (
	"strings"
	"time"
)

// MaxDescriptionLength is the maximum allowed length for expense descriptions.
const MaxDescriptionLength = 200

// Validate checks expense preconditions before persistence.
func (e *Expense) Validate() error {
	if e.Amount.IsNegative() || e.Amount.IsZero() {
		return NewValidationError("amount", "must be greater than zero")
	}
	if !IsValidCategory(e.Category) {
		return NewValidationError("category", "unknown category")
	}
	if strings.TrimSpace(e.Description) == "" {
		return NewValidationError("description", "is required")
	}
	if len(e.Description) > MaxDescriptionLength {
		return NewValidationError("description", "too long")
	}
	if e.Date.IsZero() {
		return NewValidationError("date", "is required")
	}
	return nil
}

// Validate checks budget preconditions before persistence.
func (b *Budget) Validate() error {
	if _, ok := b.MonthNumber(); !ok {
		return NewValidationError("month", "must be a month name")
	}
	if b.Year < 2000 || b.Year > 2100 {
		return NewValidationError("year", "out of range")
	}
	if b.TotalBudget.IsNegative() || b.TotalBudget.IsZero() {
		return NewValidationError("totalBudget", "must be greater than zero")
	}
	for category, limit := range b.Categories {
		if !IsValidCategory(category) {
			return NewValidationError("categories", "unknown category "+category)
		}
		if limit.IsNegative() {
			return NewValidationError("categories", "limit for "+category+" must not be negative")
		}
	}
	return nil
}

// Validate checks goal preconditions before persistence. The contribution cap
// (current must not exceed target) is treated as the intended invariant on
// every write path, not only quick-add contributions.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if g.TargetAmount.IsNegative() || g.TargetAmount.IsZero() {
		return NewValidationError("targetAmount", "must be greater than zero")
	}
	if g.CurrentAmount.IsNegative() {
		return NewValidationError("currentAmount", "must not be negative")
	}
	if g.CurrentAmount.GreaterThan(g.TargetAmount) {
		return NewValidationError("currentAmount", "must not exceed target amount")
	}
	if g.Deadline.IsZero() {
		return NewValidationError("deadline", "is required")
	}
	if g.Priority < PriorityHigh || g.Priority > PriorityLow {
		return NewValidationError("priority", "must be 1 (high), 2 (medium) or 3 (low)")
	}
	return nil
}

// Validate checks bank account preconditions before persistence. Balances may
// be negative for credit and loan accounts.
func (a *BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if strings.TrimSpace(a.BankName) == "" {
		return NewValidationError("bankName", "is required")
	}
	if strings.TrimSpace(a.AccountNumber) == "" {
		return NewValidationError("accountNumber", "is required")
	}
	validType := false
	for _, t := range AccountTypes {
		if a.AccountType == t {
			validType = true
			break
		}
	}
	if !validType {
		return NewValidationError("accountType", "unknown account type")
	}
	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}
	return nil
}

// DateOnly truncates t to its calendar date, dropping the time component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
