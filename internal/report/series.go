package report

import (
	"time"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
)

// Spending chart time ranges.
const (
	RangeWeek        = "week"
	RangeMonth       = "month"
	RangeThreeMonths = "3months"
)

// SeriesPoint is one bucket of a spending time series.
type SeriesPoint struct {
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// WeekRange returns the trailing 7-day window ending today, inclusive.
func WeekRange(now time.Time) (time.Time, time.Time) {
	end := models.DateOnly(now)
	return end.AddDate(0, 0, -6), end
}

// MonthRange returns the first and last day of now's month.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// ThreeMonthRange returns the window from the first day of two months ago to
// the last day of now's month.
func ThreeMonthRange(now time.Time) (time.Time, time.Time) {
	_, end := MonthRange(now)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)
	return start, end
}

// PriorMonthRange returns the first and last day of the month before now's.
func PriorMonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return start, start.AddDate(0, 1, -1)
}

// DailySeries buckets spending per calendar day over [start, end], inclusive.
// Days without expenses appear with a zero total.
func DailySeries(expenses []models.Expense, start, end time.Time) []SeriesPoint {
	startDay := models.DateOnly(start)
	endDay := models.DateOnly(end)

	totals := make(map[string]decimal.Decimal)
	for _, exp := range FilterByDateRange(expenses, startDay, endDay) {
		key := models.DateOnly(exp.Date).Format("Jan 2")
		if existing, ok := totals[key]; ok {
			totals[key] = existing.Add(exp.Amount)
		} else {
			totals[key] = exp.Amount
		}
	}

	var series []SeriesPoint
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		label := day.Format("Jan 2")
		total := decimal.Zero
		if t, ok := totals[label]; ok {
			total = t
		}
		series = append(series, SeriesPoint{Label: label, Total: total})
	}
	return series
}

// MonthlySeries buckets spending per calendar month over [start, end].
// Months without expenses appear with a zero total.
func MonthlySeries(expenses []models.Expense, start, end time.Time) []SeriesPoint {
	startMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	endMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	totals := make(map[string]decimal.Decimal)
	for _, exp := range FilterByDateRange(expenses, start, end) {
		key := exp.Date.Format("Jan 2006")
		if existing, ok := totals[key]; ok {
			totals[key] = existing.Add(exp.Amount)
		} else {
			totals[key] = exp.Amount
		}
	}

	var series []SeriesPoint
	for month := startMonth; !month.After(endMonth); month = month.AddDate(0, 1, 0) {
		label := month.Format("Jan 2006")
		total := decimal.Zero
		if t, ok := totals[label]; ok {
			total = t
		}
		series = append(series, SeriesPoint{Label: label, Total: total})
	}
	return series
}
