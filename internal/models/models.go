// Package models defines the domain entities for the personal finance tracker.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a profile or account does not specify one.
const DefaultCurrency = "USD"

// Categories is the fixed vocabulary for expense and budget line items.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Education",
	"Travel",
	"Other",
}

// IsValidCategory reports whether name is part of the fixed category vocabulary.
func IsValidCategory(name string) bool {
	return slices.Contains(Categories, name)
}

// Goal priority ranks. Lower value means higher priority.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// PriorityLabel returns the human label for a priority rank.
func PriorityLabel(priority int) string {
	switch priority {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// Bank account types.
const (
	AccountTypeChecking   = "Checking"
	AccountTypeSavings    = "Savings"
	AccountTypeCreditCard = "Credit Card"
	AccountTypeLoan       = "Loan"
)

// AccountTypes lists the supported bank account types.
var AccountTypes = []string{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeCreditCard,
	AccountTypeLoan,
}

// Expense represents a single logged expense.
type Expense struct {
	ID          int             `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Budget represents a monthly budget with per-category limits.
type Budget struct {
	ID          int                        `json:"id"`
	Month       string                     `json:"month"` // month name, e.g. "January"
	Year        int                        `json:"year"`
	Categories  map[string]decimal.Decimal `json:"categories"`
	TotalBudget decimal.Decimal            `json:"totalBudget"`
	IsActive    bool                       `json:"isActive"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// MonthNumber parses the stored month name into a calendar month. Budgets
// store a display month name; all period matching downstream is numeric.
func (b *Budget) MonthNumber() (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(b.Month, m.String()) {
			return m, true
		}
	}
	return 0, false
}

// Goal represents a savings goal.
type Goal struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	Priority      int             `json:"priority"`
	Category      string          `json:"category"` // free-form, not the expense vocabulary
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BankAccount represents a linked bank account record. It is not consumed by
// the aggregation engine.
type BankAccount struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"` // may be negative for credit/loan
	Tags          string          `json:"tags"`    // comma-delimited labels
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TagList splits the comma-delimited tags field into trimmed labels.
func (a *BankAccount) TagList() []string {
	if strings.TrimSpace(a.Tags) == "" {
		return nil
	}
	var tags []string
	for tag := range strings.SplitSeq(a.Tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Profile represents the user profile.
type Profile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	Website   string    `json:"website"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
