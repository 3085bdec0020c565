package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"moneypulse/internal/models"
)

func expense(amount float64, category string, date time.Time) models.Expense {
	return models.Expense{
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
		Description: category,
		Date:        date,
	}
}

func TestFilterByDateRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("includes both boundary days", func(t *testing.T) {
		expenses := []models.Expense{
			expense(10, "Other", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)),
			expense(20, "Other", start),
			expense(30, "Other", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)),
			expense(40, "Other", end),
			expense(50, "Other", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		}

		filtered := FilterByDateRange(expenses, start, end)
		require.Len(t, filtered, 3)
		require.True(t, filtered[0].Date.Equal(start))
		require.True(t, filtered[2].Date.Equal(end))
	})

	t.Run("ignores time components on expense dates", func(t *testing.T) {
		expenses := []models.Expense{
			expense(10, "Other", time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)),
		}

		filtered := FilterByDateRange(expenses, start, end)
		require.Len(t, filtered, 1)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		require.Empty(t, FilterByDateRange(nil, start, end))
	})
}

func TestSumAmounts(t *testing.T) {
	t.Parallel()

	t.Run("sums exactly without float drift", func(t *testing.T) {
		expenses := []models.Expense{
			{Amount: decimal.RequireFromString("0.1")},
			{Amount: decimal.RequireFromString("0.2")},
			{Amount: decimal.RequireFromString("0.3")},
		}
		require.True(t, SumAmounts(expenses).Equal(decimal.RequireFromString("0.6")))
	})

	t.Run("empty list sums to zero", func(t *testing.T) {
		require.True(t, SumAmounts(nil).IsZero())
	})
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		expense(12.50, "Food & Dining", day),
		expense(7.50, "Food & Dining", day),
		expense(40, "Transportation", day),
	}

	totals := GroupByCategory(expenses)
	require.Len(t, totals, 2)
	require.True(t, totals["Food & Dining"].Equal(decimal.NewFromInt(20)))
	require.True(t, totals["Transportation"].Equal(decimal.NewFromInt(40)))

	t.Run("category totals sum to overall total", func(t *testing.T) {
		sum := decimal.Zero
		for _, total := range totals {
			sum = sum.Add(total)
		}
		require.True(t, sum.Equal(SumAmounts(expenses)))
	})
}

func TestComputeBudgetProgress(t *testing.T) {
	t.Parallel()

	budget := &models.Budget{
		Month: "March",
		Year:  2026,
		Categories: map[string]decimal.Decimal{
			"Food & Dining":  decimal.NewFromInt(100),
			"Transportation": decimal.NewFromInt(50),
			"Entertainment":  decimal.Zero, // no budget set
		},
		TotalBudget: decimal.NewFromInt(150),
		IsActive:    true,
	}
	march := func(day int) time.Time { return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC) }

	t.Run("spending exactly at the limit is not over budget", func(t *testing.T) {
		expenses := []models.Expense{expense(100, "Food & Dining", march(5))}

		progress := ComputeBudgetProgress(budget, expenses, time.March, 2026)
		require.Len(t, progress.PerCategory, 2) // zero-limit category excluded

		food := progress.PerCategory[0]
		require.Equal(t, "Food & Dining", food.Category)
		require.True(t, food.Percentage.Equal(decimal.NewFromInt(100)))
		require.False(t, food.OverBudget)
		require.True(t, food.Remaining.IsZero())
	})

	t.Run("one cent over the limit flips the over-budget flag", func(t *testing.T) {
		expenses := []models.Expense{expense(100.01, "Food & Dining", march(5))}

		progress := ComputeBudgetProgress(budget, expenses, time.March, 2026)
		food := progress.PerCategory[0]
		require.True(t, food.OverBudget)
		require.True(t, food.Percentage.GreaterThan(decimal.NewFromInt(100)))
		require.True(t, food.DisplayPercentage().Equal(decimal.NewFromInt(100)))
		require.True(t, food.Remaining.IsNegative())
	})

	t.Run("expenses outside the reference month are ignored", func(t *testing.T) {
		expenses := []models.Expense{
			expense(100, "Food & Dining", march(5)),
			expense(999, "Food & Dining", time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)),
			expense(999, "Food & Dining", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
		}

		progress := ComputeBudgetProgress(budget, expenses, time.March, 2026)
		require.True(t, progress.TotalSpent.Equal(decimal.NewFromInt(100)))
	})

	t.Run("category without expenses shows zero spent", func(t *testing.T) {
		progress := ComputeBudgetProgress(budget, nil, time.March, 2026)
		for _, line := range progress.PerCategory {
			require.True(t, line.Spent.IsZero())
			require.True(t, line.Percentage.IsZero())
			require.False(t, line.OverBudget)
		}
	})

	t.Run("nil budget yields empty progress", func(t *testing.T) {
		progress := ComputeBudgetProgress(nil, []models.Expense{expense(10, "Other", march(1))}, time.March, 2026)
		require.True(t, progress.TotalBudget.IsZero())
		require.True(t, progress.TotalSpent.IsZero())
		require.Empty(t, progress.PerCategory)
	})

	t.Run("overall remaining goes negative when overspent", func(t *testing.T) {
		expenses := []models.Expense{
			expense(100, "Food & Dining", march(5)),
			expense(60, "Transportation", march(6)),
		}

		progress := ComputeBudgetProgress(budget, expenses, time.March, 2026)
		require.True(t, progress.OverBudget)
		require.True(t, progress.Remaining.Equal(decimal.NewFromInt(-10)))
	})
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()

	t.Run("zero prior month is neutral, not infinite", func(t *testing.T) {
		trend := ComputeTrend(decimal.NewFromInt(500), decimal.Zero)
		require.Equal(t, TrendNeutral, trend.Direction)
		require.True(t, trend.PercentChange.IsZero())
	})

	t.Run("increased spending is a negative trend", func(t *testing.T) {
		trend := ComputeTrend(decimal.NewFromInt(150), decimal.NewFromInt(100))
		require.Equal(t, TrendNegative, trend.Direction)
		require.True(t, trend.PercentChange.Equal(decimal.NewFromInt(50)))
	})

	t.Run("decreased spending is a positive trend", func(t *testing.T) {
		trend := ComputeTrend(decimal.NewFromInt(75), decimal.NewFromInt(100))
		require.Equal(t, TrendPositive, trend.Direction)
		require.True(t, trend.PercentChange.Equal(decimal.NewFromInt(-25)))
	})

	t.Run("unchanged spending is neutral", func(t *testing.T) {
		trend := ComputeTrend(decimal.NewFromInt(100), decimal.NewFromInt(100))
		require.Equal(t, TrendNeutral, trend.Direction)
		require.True(t, trend.PercentChange.IsZero())
	})
}

func TestComputeGoalCompletion(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("derives percentage and days remaining", func(t *testing.T) {
		goals := []models.Goal{
			{
				Name:          "Emergency fund",
				TargetAmount:  decimal.NewFromInt(1000),
				CurrentAmount: decimal.NewFromInt(250),
				Deadline:      time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
				Priority:      models.PriorityHigh,
			},
		}

		summary := ComputeGoalCompletion(goals, today)
		require.Len(t, summary.Goals, 1)
		status := summary.Goals[0]
		require.True(t, status.Percentage.Equal(decimal.NewFromInt(25)))
		require.Equal(t, 10, status.DaysRemaining)
		require.False(t, status.Complete)
		require.False(t, status.Overdue)
	})

	t.Run("completed goal is never overdue", func(t *testing.T) {
		goals := []models.Goal{
			{
				Name:          "Laptop",
				TargetAmount:  decimal.NewFromInt(500),
				CurrentAmount: decimal.NewFromInt(500),
				Deadline:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Priority:      models.PriorityMedium,
			},
		}

		summary := ComputeGoalCompletion(goals, today)
		status := summary.Goals[0]
		require.True(t, status.Complete)
		require.Negative(t, status.DaysRemaining)
		require.False(t, status.Overdue)
	})

	t.Run("incomplete goal past deadline is overdue", func(t *testing.T) {
		goals := []models.Goal{
			{
				Name:          "Trip",
				TargetAmount:  decimal.NewFromInt(500),
				CurrentAmount: decimal.NewFromInt(100),
				Deadline:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
				Priority:      models.PriorityLow,
			},
		}

		summary := ComputeGoalCompletion(goals, today)
		require.True(t, summary.Goals[0].Overdue)
	})

	t.Run("display percentage clamps above target", func(t *testing.T) {
		goals := []models.Goal{
			{
				Name:          "Seeded",
				TargetAmount:  decimal.NewFromInt(100),
				CurrentAmount: decimal.NewFromInt(150), // legacy row, pre-cap
				Deadline:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				Priority:      models.PriorityHigh,
			},
		}

		summary := ComputeGoalCompletion(goals, today)
		status := summary.Goals[0]
		require.True(t, status.Percentage.Equal(decimal.NewFromInt(150)))
		require.True(t, status.DisplayPercentage().Equal(decimal.NewFromInt(100)))
	})

	t.Run("zero target yields zero percentage", func(t *testing.T) {
		goals := []models.Goal{
			{
				Name:         "Empty",
				TargetAmount: decimal.Zero,
				Deadline:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				Priority:     models.PriorityLow,
			},
		}

		summary := ComputeGoalCompletion(goals, today)
		require.True(t, summary.Goals[0].Percentage.IsZero())
		require.True(t, summary.CompletionRate.IsZero())
	})

	t.Run("aggregates totals and completion rate", func(t *testing.T) {
		goals := []models.Goal{
			{Name: "A", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(50), Deadline: today, Priority: models.PriorityHigh},
			{Name: "B", TargetAmount: decimal.NewFromInt(300), CurrentAmount: decimal.NewFromInt(150), Deadline: today, Priority: models.PriorityLow},
		}

		summary := ComputeGoalCompletion(goals, today)
		require.True(t, summary.TotalTarget.Equal(decimal.NewFromInt(400)))
		require.True(t, summary.TotalProgress.Equal(decimal.NewFromInt(200)))
		require.True(t, summary.CompletionRate.Equal(decimal.NewFromInt(50)))
	})
}

func TestApplyGoalContribution(t *testing.T) {
	t.Parallel()

	goal := models.Goal{
		Name:          "Car",
		TargetAmount:  decimal.NewFromInt(100),
		CurrentAmount: decimal.NewFromInt(90),
		Deadline:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Priority:      models.PriorityHigh,
	}

	t.Run("contribution up to the target succeeds", func(t *testing.T) {
		updated, err := ApplyGoalContribution(goal, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.True(t, updated.CurrentAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("contribution past the target is rejected", func(t *testing.T) {
		_, err := ApplyGoalContribution(goal, decimal.NewFromInt(20))
		require.Error(t, err)
		require.True(t, models.IsValidation(err))

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "amount", verr.Field)
	})

	t.Run("non-positive contributions are rejected", func(t *testing.T) {
		_, err := ApplyGoalContribution(goal, decimal.Zero)
		require.Error(t, err)
		_, err = ApplyGoalContribution(goal, decimal.NewFromInt(-5))
		require.Error(t, err)
	})

	t.Run("input goal is not mutated on rejection", func(t *testing.T) {
		before := goal.CurrentAmount
		_, err := ApplyGoalContribution(goal, decimal.NewFromInt(20))
		require.Error(t, err)
		require.True(t, goal.CurrentAmount.Equal(before))
	})
}

func TestSortGoals(t *testing.T) {
	t.Parallel()

	goals := []models.Goal{
		{Name: "June medium", Priority: models.PriorityMedium, Deadline: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "December high", Priority: models.PriorityHigh, Deadline: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "January high", Priority: models.PriorityHigh, Deadline: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	sorted := SortGoals(goals)
	require.Equal(t, "January high", sorted[0].Name)
	require.Equal(t, "December high", sorted[1].Name)
	require.Equal(t, "June medium", sorted[2].Name)

	t.Run("input slice is unchanged", func(t *testing.T) {
		require.Equal(t, "June medium", goals[0].Name)
	})
}

func TestFilterExpenses(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	expenses := []models.Expense{
		{ID: 1, Amount: decimal.NewFromInt(10), Category: "Food & Dining", Description: "Lunch at cafe", Date: day(1)},
		{ID: 2, Amount: decimal.NewFromInt(50), Category: "Transportation", Description: "Train pass", Date: day(2)},
		{ID: 3, Amount: decimal.NewFromInt(30), Category: "Food & Dining", Description: "Groceries", Date: day(3)},
	}

	t.Run("default sort is date descending", func(t *testing.T) {
		filtered := FilterExpenses(expenses, ExpenseFilter{})
		require.Equal(t, []int{3, 2, 1}, []int{filtered[0].ID, filtered[1].ID, filtered[2].ID})
	})

	t.Run("amount sort is descending", func(t *testing.T) {
		filtered := FilterExpenses(expenses, ExpenseFilter{Sort: SortByAmount})
		require.Equal(t, 2, filtered[0].ID)
		require.Equal(t, 3, filtered[1].ID)
	})

	t.Run("category sort is ascending", func(t *testing.T) {
		filtered := FilterExpenses(expenses, ExpenseFilter{Sort: SortByCategory})
		require.Equal(t, "Food & Dining", filtered[0].Category)
		require.Equal(t, "Transportation", filtered[2].Category)
	})

	t.Run("search matches description and category case-insensitively", func(t *testing.T) {
		require.Len(t, FilterExpenses(expenses, ExpenseFilter{Search: "LUNCH"}), 1)
		require.Len(t, FilterExpenses(expenses, ExpenseFilter{Search: "food"}), 2)
	})

	t.Run("category filter is an exact match", func(t *testing.T) {
		require.Len(t, FilterExpenses(expenses, ExpenseFilter{Category: "Food & Dining"}), 2)
		require.Empty(t, FilterExpenses(expenses, ExpenseFilter{Category: "food & dining"}))
	})

	t.Run("search and category compose with AND", func(t *testing.T) {
		filtered := FilterExpenses(expenses, ExpenseFilter{Category: "Food & Dining", Search: "groceries"})
		require.Len(t, filtered, 1)
		require.Equal(t, 3, filtered[0].ID)
	})

	t.Run("input slice order is unchanged", func(t *testing.T) {
		_ = FilterExpenses(expenses, ExpenseFilter{Sort: SortByAmount})
		require.Equal(t, 1, expenses[0].ID)
	})
}
