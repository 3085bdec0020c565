// Package record normalizes raw rows from the hosted record service into
// canonical entities. The service exposes provider-specific field names
// (amount_c, category_c, ...) that have historically drifted between call
// sites, so all mapping happens at this single boundary. Normalization never
// fails: one corrupt row must not blank a whole list, so bad values are
// defaulted and logged instead.
package record

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/logger"
	"moneypulse/internal/models"
)

// Raw is one row as returned by the record service.
type Raw map[string]any

// Field aliases, canonical name first. Later entries are the provider's
// suffixed column names and legacy spellings seen in exports.
var (
	amountKeys      = []string{"amount", "amount_c", "Amount"}
	categoryKeys    = []string{"category", "category_c", "Category"}
	descriptionKeys = []string{"description", "description_c", "Name"}
	dateKeys        = []string{"date", "date_c"}
	createdAtKeys   = []string{"createdAt", "created_at_c", "created_at", "CreatedOn"}
	idKeys          = []string{"id", "Id"}

	monthKeys       = []string{"month", "month_c"}
	yearKeys        = []string{"year", "year_c"}
	categoriesKeys  = []string{"categories", "categories_c"}
	totalBudgetKeys = []string{"totalBudget", "total_budget_c"}
	isActiveKeys    = []string{"isActive", "is_active_c"}

	nameKeys          = []string{"name", "name_c"}
	targetAmountKeys  = []string{"targetAmount", "target_amount_c"}
	currentAmountKeys = []string{"currentAmount", "current_amount_c"}
	deadlineKeys      = []string{"deadline", "deadline_c"}
	priorityKeys      = []string{"priority", "priority_c"}
)

// NormalizeExpenses maps raw rows to canonical expenses. A non-numeric amount
// defaults to zero with a warning; it never aborts the batch. Normalizing an
// already-canonical list is a no-op.
func NormalizeExpenses(rows []Raw) []models.Expense {
	expenses := make([]models.Expense, 0, len(rows))
	for i, row := range rows {
		exp := models.Expense{
			ID:          intField(row, idKeys),
			Category:    stringField(row, categoryKeys),
			Description: stringField(row, descriptionKeys),
			Date:        dateField(row, dateKeys),
			CreatedAt:   dateField(row, createdAtKeys),
		}
		amount, ok := decimalField(row, amountKeys)
		if !ok {
			logger.Log.Warn().
				Int("row", i).
				Int("id", exp.ID).
				Msg("expense row has unparseable amount, defaulting to 0")
		}
		exp.Amount = amount
		expenses = append(expenses, exp)
	}
	return expenses
}

// NormalizeBudget maps a raw row to a canonical budget. The categories field
// arrives as embedded JSON; a parse failure yields an empty mapping.
func NormalizeBudget(row Raw) models.Budget {
	budget := models.Budget{
		ID:         intField(row, idKeys),
		Month:      stringField(row, monthKeys),
		Year:       intField(row, yearKeys),
		Categories: map[string]decimal.Decimal{},
		IsActive:   boolField(row, isActiveKeys),
	}
	total, ok := decimalField(row, totalBudgetKeys)
	if !ok {
		logger.Log.Warn().Int("id", budget.ID).Msg("budget row has unparseable total, defaulting to 0")
	}
	budget.TotalBudget = total

	switch raw := firstValue(row, categoriesKeys).(type) {
	case string:
		if raw != "" {
			if err := json.Unmarshal([]byte(raw), &budget.Categories); err != nil {
				logger.Log.Warn().Err(err).Int("id", budget.ID).Msg("failed to parse budget categories JSON")
				budget.Categories = map[string]decimal.Decimal{}
			}
		}
	case map[string]any:
		for category, value := range raw {
			limit, ok := toDecimal(value)
			if !ok {
				logger.Log.Warn().Str("category", category).Msg("budget category limit unparseable, defaulting to 0")
			}
			budget.Categories[category] = limit
		}
	}
	return budget
}

// NormalizeGoals maps raw rows to canonical goals.
func NormalizeGoals(rows []Raw) []models.Goal {
	goals := make([]models.Goal, 0, len(rows))
	for i, row := range rows {
		goal := models.Goal{
			ID:       intField(row, idKeys),
			Name:     stringField(row, nameKeys),
			Deadline: dateField(row, deadlineKeys),
			Priority: intField(row, priorityKeys),
			Category: stringField(row, categoryKeys),
		}
		target, ok := decimalField(row, targetAmountKeys)
		if !ok {
			logger.Log.Warn().Int("row", i).Msg("goal row has unparseable target amount, defaulting to 0")
		}
		goal.TargetAmount = target
		goal.CurrentAmount, _ = decimalField(row, currentAmountKeys)
		goals = append(goals, goal)
	}
	return goals
}

func firstValue(row Raw, keys []string) any {
	for _, key := range keys {
		if value, ok := row[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func stringField(row Raw, keys []string) string {
	if s, ok := firstValue(row, keys).(string); ok {
		return s
	}
	return ""
}

func boolField(row Raw, keys []string) bool {
	if b, ok := firstValue(row, keys).(bool); ok {
		return b
	}
	return false
}

func intField(row Raw, keys []string) int {
	d, ok := toDecimal(firstValue(row, keys))
	if !ok {
		return 0
	}
	return int(d.IntPart())
}

// decimalField returns the parsed amount and whether parsing succeeded.
// Missing or unparseable values come back as zero.
func decimalField(row Raw, keys []string) (decimal.Decimal, bool) {
	return toDecimal(firstValue(row, keys))
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		return decimal.NewFromFloat(v), true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case decimal.Decimal:
		return v, true
	default:
		return decimal.Zero, false
	}
}

// dateField parses a calendar date or timestamp. Unparseable dates come back
// as the zero time; such rows simply never match a period filter.
func dateField(row Raw, keys []string) time.Time {
	switch v := firstValue(row, keys).(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
