// Package report derives dashboard views from expense, budget, and goal
// records. Every function is pure: no I/O, no internal state, deterministic
// for a given input. Malformed historical data degrades gracefully; only new
// input is rejected, at the validation boundary.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
)

// TrendDirection classifies a month-over-month spending change. Higher
// spending is unfavorable, so an increase is negative.
type TrendDirection string

// Trend directions.
const (
	TrendPositive TrendDirection = "positive"
	TrendNegative TrendDirection = "negative"
	TrendNeutral  TrendDirection = "neutral"
)

// FilterByDateRange returns expenses whose calendar date falls within
// [start, end], inclusive on both ends. Time components are ignored.
func FilterByDateRange(expenses []models.Expense, start, end time.Time) []models.Expense {
	startDay := models.DateOnly(start)
	endDay := models.DateOnly(end)

	var filtered []models.Expense
	for _, exp := range expenses {
		day := models.DateOnly(exp.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		filtered = append(filtered, exp)
	}
	return filtered
}

// SumAmounts returns the exact decimal sum of expense amounts. An empty
// sequence sums to zero. Rounding happens only at the formatting boundary.
func SumAmounts(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, exp := range expenses {
		total = total.Add(exp.Amount)
	}
	return total
}

// GroupByCategory sums amounts per distinct category present in the input.
// Categories without expenses are absent from the result.
func GroupByCategory(expenses []models.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, exp := range expenses {
		if existing, ok := totals[exp.Category]; ok {
			totals[exp.Category] = existing.Add(exp.Amount)
		} else {
			totals[exp.Category] = exp.Amount
		}
	}
	return totals
}

// CategoryProgress is the budget progress of a single category line.
type CategoryProgress struct {
	Category  string          `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	// Percentage is spent/limit*100, unclamped. Values above 100 signal
	// over-budget and must survive for flag logic; clamping is display-only.
	Percentage decimal.Decimal `json:"percentage"`
	OverBudget bool            `json:"overBudget"`
}

// DisplayPercentage clamps the raw percentage to [0, 100] for rendering a
// progress bar that fills at the limit.
func (p CategoryProgress) DisplayPercentage() decimal.Decimal {
	return clampPercent(p.Percentage)
}

// BudgetProgress is the overall budget utilization for a reference month.
type BudgetProgress struct {
	Month       string             `json:"month"`
	Year        int                `json:"year"`
	TotalBudget decimal.Decimal    `json:"totalBudget"`
	TotalSpent  decimal.Decimal    `json:"totalSpent"`
	Remaining   decimal.Decimal    `json:"remaining"` // negative means over budget
	OverBudget  bool               `json:"overBudget"`
	PerCategory []CategoryProgress `json:"perCategory"`
}

// ComputeBudgetProgress derives budget utilization from the budget's limits
// and the expenses dated in the reference month. The reference period is
// matched numerically on month and year. Categories with a zero limit mean
// "no budget set" and are excluded from the breakdown.
func ComputeBudgetProgress(budget *models.Budget, expenses []models.Expense, month time.Month, year int) BudgetProgress {
	progress := BudgetProgress{
		Month:       month.String(),
		Year:        year,
		TotalBudget: decimal.Zero,
		TotalSpent:  decimal.Zero,
		Remaining:   decimal.Zero,
	}
	if budget == nil {
		return progress
	}

	var inMonth []models.Expense
	for _, exp := range expenses {
		if exp.Date.Month() == month && exp.Date.Year() == year {
			inMonth = append(inMonth, exp)
		}
	}

	progress.TotalBudget = budget.TotalBudget
	progress.TotalSpent = SumAmounts(inMonth)
	progress.Remaining = budget.TotalBudget.Sub(progress.TotalSpent)
	progress.OverBudget = progress.TotalSpent.GreaterThan(budget.TotalBudget)

	byCategory := GroupByCategory(inMonth)

	categories := make([]string, 0, len(budget.Categories))
	for category := range budget.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		limit := budget.Categories[category]
		if limit.IsZero() {
			continue
		}
		spent := decimal.Zero
		if s, ok := byCategory[category]; ok {
			spent = s
		}
		progress.PerCategory = append(progress.PerCategory, CategoryProgress{
			Category:   category,
			Limit:      limit,
			Spent:      spent,
			Remaining:  limit.Sub(spent),
			Percentage: spent.Div(limit).Mul(decimal.NewFromInt(100)),
			OverBudget: spent.GreaterThan(limit),
		})
	}
	return progress
}

// Trend is the month-over-month spending change.
type Trend struct {
	PercentChange decimal.Decimal `json:"percentChange"`
	Direction     TrendDirection  `json:"direction"`
}

// ComputeTrend compares current spending against a prior period. A prior
// total of zero yields a neutral trend with zero change; growth from zero is
// undefined, not infinite.
func ComputeTrend(current, prior decimal.Decimal) Trend {
	if prior.IsZero() {
		return Trend{PercentChange: decimal.Zero, Direction: TrendNeutral}
	}
	change := current.Sub(prior).Div(prior).Mul(decimal.NewFromInt(100))
	switch {
	case current.GreaterThan(prior):
		return Trend{PercentChange: change, Direction: TrendNegative}
	case current.LessThan(prior):
		return Trend{PercentChange: change, Direction: TrendPositive}
	default:
		return Trend{PercentChange: decimal.Zero, Direction: TrendNeutral}
	}
}

// GoalStatus is the derived progress of a single goal.
type GoalStatus struct {
	Goal          models.Goal     `json:"goal"`
	Percentage    decimal.Decimal `json:"percentage"` // unclamped
	DaysRemaining int             `json:"daysRemaining"`
	Complete      bool            `json:"complete"`
	Overdue       bool            `json:"overdue"`
}

// DisplayPercentage clamps the completion percentage to [0, 100].
func (s GoalStatus) DisplayPercentage() decimal.Decimal {
	return clampPercent(s.Percentage)
}

// GoalSummary aggregates completion across all goals.
type GoalSummary struct {
	TotalTarget    decimal.Decimal `json:"totalTarget"`
	TotalProgress  decimal.Decimal `json:"totalProgress"`
	CompletionRate decimal.Decimal `json:"completionRate"`
	Goals          []GoalStatus    `json:"goals"`
}

// ComputeGoalCompletion derives per-goal and aggregate completion. Days
// remaining may be negative for a missed deadline, but a completed goal is
// never reported overdue. Goals are ordered by priority, then deadline.
func ComputeGoalCompletion(goals []models.Goal, today time.Time) GoalSummary {
	summary := GoalSummary{
		TotalTarget:    decimal.Zero,
		TotalProgress:  decimal.Zero,
		CompletionRate: decimal.Zero,
	}
	todayDay := models.DateOnly(today)

	for _, goal := range SortGoals(goals) {
		summary.TotalTarget = summary.TotalTarget.Add(goal.TargetAmount)
		summary.TotalProgress = summary.TotalProgress.Add(goal.CurrentAmount)

		status := GoalStatus{
			Goal:          goal,
			Percentage:    decimal.Zero,
			DaysRemaining: daysBetween(todayDay, models.DateOnly(goal.Deadline)),
		}
		if goal.TargetAmount.IsPositive() {
			status.Percentage = goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100))
			status.Complete = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
		}
		status.Overdue = status.DaysRemaining < 0 && !status.Complete
		summary.Goals = append(summary.Goals, status)
	}

	if summary.TotalTarget.IsPositive() {
		summary.CompletionRate = summary.TotalProgress.Div(summary.TotalTarget).Mul(decimal.NewFromInt(100))
	}
	return summary
}

// ApplyGoalContribution returns a copy of goal with the contribution added.
// It rejects non-positive contributions and contributions that would push the
// current amount past the target. This is the only mutation with a
// cross-field invariant checked before persistence is attempted.
func ApplyGoalContribution(goal models.Goal, amount decimal.Decimal) (models.Goal, error) {
	if amount.IsNegative() || amount.IsZero() {
		return goal, models.NewValidationError("amount", "must be greater than zero")
	}
	next := goal.CurrentAmount.Add(amount)
	if next.GreaterThan(goal.TargetAmount) {
		return goal, models.NewValidationError("amount", "contribution exceeds target amount")
	}
	goal.CurrentAmount = next
	return goal, nil
}

// SortGoals orders goals by priority ascending, then by soonest deadline.
// The input slice is not modified.
func SortGoals(goals []models.Goal) []models.Goal {
	sorted := make([]models.Goal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Deadline.Before(sorted[j].Deadline)
	})
	return sorted
}

// Expense list sort orders.
type ExpenseSort string

// Supported expense sort keys.
const (
	SortByDate     ExpenseSort = "date"     // date descending (default)
	SortByAmount   ExpenseSort = "amount"   // amount descending
	SortByCategory ExpenseSort = "category" // category ascending
)

// ExpenseFilter selects and orders expenses for listing. Category is an exact
// match, Search matches description or category case-insensitively, and the
// two compose with AND.
type ExpenseFilter struct {
	Category string
	Search   string
	Sort     ExpenseSort
}

// FilterExpenses applies an ExpenseFilter. The input slice is not modified.
func FilterExpenses(expenses []models.Expense, filter ExpenseFilter) []models.Expense {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var filtered []models.Expense
	for _, exp := range expenses {
		if filter.Category != "" && exp.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(exp.Description), search) &&
			!strings.Contains(strings.ToLower(exp.Category), search) {
			continue
		}
		filtered = append(filtered, exp)
	}

	switch filter.Sort {
	case SortByAmount:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Amount.GreaterThan(filtered[j].Amount)
		})
	case SortByCategory:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Category < filtered[j].Category
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date.After(filtered[j].Date)
		})
	}
	return filtered
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// daysBetween returns whole days from a to b; negative when b is in the past.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
