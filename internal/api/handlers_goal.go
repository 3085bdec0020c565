package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
)

type goalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
	Priority      int             `json:"priority"`
	Category      string          `json:"category"`
}

func (req *goalRequest) toModel() (*models.Goal, error) {
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return nil, models.NewValidationError("deadline", "must be YYYY-MM-DD")
	}
	goal := &models.Goal{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
		Priority:      req.Priority,
		Category:      req.Category,
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	respondJSON(w, http.StatusOK, goals)
}

func (s *Server) getGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	goal, err := s.goals.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	goal, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.goals.Create(r.Context(), goal); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	goal, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	goal.ID = id
	if err := s.goals.Update(r.Context(), goal); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.goals.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type contributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// addGoalContribution is the quick-add path. The store validates the target
// cap before writing; exceeding it is a field-level validation failure.
func (s *Server) addGoalContribution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req contributionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	goal, err := s.goals.AddContribution(r.Context(), id, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}
