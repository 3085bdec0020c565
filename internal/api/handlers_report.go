package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
	"moneypulse/internal/report"
)

type dashboardResponse struct {
	MonthSpending     decimal.Decimal          `json:"monthSpending"`
	LastMonthSpending decimal.Decimal          `json:"lastMonthSpending"`
	Trend             report.Trend             `json:"trend"`
	Budget            report.BudgetProgress    `json:"budget"`
	Goals             report.GoalSummary       `json:"goals"`
	ByCategory        map[string]string        `json:"byCategory"`
	RecentExpenses    []models.Expense         `json:"recentExpenses"`
	Accounts          []accountBalanceResponse `json:"accounts"`
}

type accountBalanceResponse struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	BankName string          `json:"bankName"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// dashboard assembles the landing view in one response: current and prior
// month spending with the derived trend, active budget progress, goal
// completion, category breakdown, recent expenses, and account balances.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	expenses, err := s.expenses.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	goals, err := s.goals.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	// No active budget is an empty progress block, not an error.
	activeBudget, err := s.budgets.GetActive(ctx)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		respondError(w, err)
		return
	}

	monthStart, monthEnd := report.MonthRange(now)
	priorStart, priorEnd := report.PriorMonthRange(now)
	monthExpenses := report.FilterByDateRange(expenses, monthStart, monthEnd)
	priorExpenses := report.FilterByDateRange(expenses, priorStart, priorEnd)

	monthSpending := report.SumAmounts(monthExpenses)
	lastMonthSpending := report.SumAmounts(priorExpenses)

	byCategory := make(map[string]string)
	for category, total := range report.GroupByCategory(monthExpenses) {
		byCategory[category] = total.StringFixed(2)
	}

	recent := report.FilterExpenses(expenses, report.ExpenseFilter{Sort: report.SortByDate})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if recent == nil {
		recent = []models.Expense{}
	}

	balances := make([]accountBalanceResponse, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, accountBalanceResponse{
			ID:       account.ID,
			Name:     account.Name,
			BankName: account.BankName,
			Balance:  account.Balance,
			Currency: account.Currency,
		})
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		MonthSpending:     monthSpending,
		LastMonthSpending: lastMonthSpending,
		Trend:             report.ComputeTrend(monthSpending, lastMonthSpending),
		Budget:            report.ComputeBudgetProgress(activeBudget, expenses, now.Month(), now.Year()),
		Goals:             report.ComputeGoalCompletion(goals, now),
		ByCategory:        byCategory,
		RecentExpenses:    recent,
		Accounts:          balances,
	})
}

// budgetProgress reports utilization of the active budget for the current
// month. Without an active budget the totals are zero.
func (s *Server) budgetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	activeBudget, err := s.budgets.GetActive(ctx)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		respondError(w, err)
		return
	}

	expenses, err := s.expenses.List(ctx)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, report.ComputeBudgetProgress(activeBudget, expenses, now.Month(), now.Year()))
}

// spendingSeries returns a zero-filled time series for the requested range:
// daily buckets for week and month, monthly buckets for 3months.
func (s *Server) spendingSeries(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	now := s.now()
	rangeName := r.URL.Query().Get("range")
	if rangeName == "" {
		rangeName = report.RangeMonth
	}

	var series []report.SeriesPoint
	switch rangeName {
	case report.RangeWeek:
		start, end := report.WeekRange(now)
		series = report.DailySeries(expenses, start, end)
	case report.RangeMonth:
		start, end := report.MonthRange(now)
		series = report.DailySeries(expenses, start, end)
	case report.RangeThreeMonths:
		start, end := report.ThreeMonthRange(now)
		series = report.MonthlySeries(expenses, start, end)
	default:
		respondError(w, models.NewValidationError("range", "must be week, month, or 3months"))
		return
	}

	if series == nil {
		series = []report.SeriesPoint{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"range": rangeName, "points": series})
}

// categoryChart renders the current month's category breakdown as a PNG pie
// chart. An empty month is a 404 rather than a blank image.
func (s *Server) categoryChart(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	now := s.now()
	start, end := report.MonthRange(now)
	monthExpenses := report.FilterByDateRange(expenses, start, end)
	if len(monthExpenses) == 0 {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "no expenses this month"})
		return
	}

	title := fmt.Sprintf("Spending by Category, %s %d", now.Month(), now.Year())
	png, err := report.CategoryChartPNG(monthExpenses, title)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		respondError(w, err)
	}
}
