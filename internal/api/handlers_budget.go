package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
)

type budgetRequest struct {
	Month       string                     `json:"month"`
	Year        int                        `json:"year"`
	Categories  map[string]decimal.Decimal `json:"categories"`
	TotalBudget decimal.Decimal            `json:"totalBudget"`
}

func (req *budgetRequest) toModel() (*models.Budget, error) {
	budget := &models.Budget{
		Month:       req.Month,
		Year:        req.Year,
		Categories:  req.Categories,
		TotalBudget: req.TotalBudget,
	}
	if budget.Categories == nil {
		budget.Categories = map[string]decimal.Decimal{}
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	respondJSON(w, http.StatusOK, budgets)
}

func (s *Server) getBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	budget, err := s.budgets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

func (s *Server) getActiveBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.budgets.GetActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// createBudget stores a new budget and makes it the active one; the store
// deactivates prior budgets in the same transaction.
func (s *Server) createBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	budget, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.budgets.Create(r.Context(), budget); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, budget)
}

func (s *Server) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	budget, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	budget.ID = id
	if err := s.budgets.Update(r.Context(), budget); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

func (s *Server) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.budgets.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) activateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.budgets.Activate(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	budget, err := s.budgets.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}
