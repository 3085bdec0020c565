package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
	"moneypulse/internal/record"
	"moneypulse/internal/report"
)

type expenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (req *expenseRequest) toModel() (*models.Expense, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	exp := &models.Expense{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return exp, nil
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	query := r.URL.Query()
	filtered := report.FilterExpenses(expenses, report.ExpenseFilter{
		Category: query.Get("category"),
		Search:   query.Get("search"),
		Sort:     report.ExpenseSort(query.Get("sort")),
	})

	if filtered == nil {
		filtered = []models.Expense{}
	}
	respondJSON(w, http.StatusOK, filtered)
}

func (s *Server) getExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	expense, err := s.expenses.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	expense, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.expenses.Create(r.Context(), expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	expense, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	expense.ID = id
	if err := s.expenses.Update(r.Context(), expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) exportExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	now := s.now()
	rangeName := r.URL.Query().Get("range")
	switch rangeName {
	case report.RangeWeek:
		start, end := report.WeekRange(now)
		expenses = report.FilterByDateRange(expenses, start, end)
	case report.RangeMonth:
		start, end := report.MonthRange(now)
		expenses = report.FilterByDateRange(expenses, start, end)
	}

	data, err := report.ExpensesCSV(expenses)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.ExportFilename(rangeName, now)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		respondError(w, err)
	}
}

// importExpenses accepts raw rows exported from the hosted record service,
// normalizes them at the record boundary, and stores the valid ones. Rows
// that fail validation after normalization are counted and skipped; one bad
// row does not abort the batch.
func (s *Server) importExpenses(w http.ResponseWriter, r *http.Request) {
	var rows []record.Raw
	if err := decodeJSON(r, &rows); err != nil {
		respondError(w, err)
		return
	}

	imported := 0
	skipped := 0
	for _, exp := range record.NormalizeExpenses(rows) {
		exp := exp
		if exp.Validate() != nil {
			skipped++
			continue
		}
		if err := s.expenses.Create(r.Context(), &exp); err != nil {
			respondError(w, err)
			return
		}
		imported++
	}
	respondJSON(w, http.StatusOK, map[string]int{"imported": imported, "skipped": skipped})
}
