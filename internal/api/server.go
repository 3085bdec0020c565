// Package api exposes the REST surface consumed by the single-page app. It
// is a thin layer: storage goes through the repository stores, and every
// derived value comes from the report package.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"moneypulse/internal/gemini"
	"moneypulse/internal/logger"
	"moneypulse/internal/models"
	"moneypulse/internal/repository"
)

// CategorySuggester suggests a category for an expense description.
// Implemented by the gemini client; nil disables the feature.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, description string, categories []string) (*gemini.CategorySuggestion, error)
}

// Server wires the HTTP routes to stores and the aggregation engine.
type Server struct {
	expenses  repository.ExpenseStore
	budgets   repository.BudgetStore
	goals     repository.GoalStore
	accounts  repository.AccountStore
	profile   repository.ProfileStore
	suggester CategorySuggester
	router    *mux.Router

	requestCounter metric.Int64Counter

	// now is injectable so period-sensitive handlers are testable.
	now func() time.Time
}

// New creates an API server over the given stores. suggester may be nil.
func New(
	expenses repository.ExpenseStore,
	budgets repository.BudgetStore,
	goals repository.GoalStore,
	accounts repository.AccountStore,
	profile repository.ProfileStore,
	suggester CategorySuggester,
) *Server {
	counter, err := otel.Meter("moneypulse/api").Int64Counter("http.requests",
		metric.WithDescription("Handled HTTP requests by route"))
	if err != nil {
		logger.Log.Warn().Err(err).Msg("failed to create request counter")
	}

	s := &Server{
		expenses:       expenses,
		budgets:        budgets,
		goals:          goals,
		accounts:       accounts,
		profile:        profile,
		suggester:      suggester,
		router:         mux.NewRouter(),
		requestCounter: counter,
		now:            time.Now,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(s.instrument)

	r.HandleFunc("/api/expenses", s.listExpenses).Methods("GET")
	r.HandleFunc("/api/expenses", s.createExpense).Methods("POST")
	r.HandleFunc("/api/expenses/export", s.exportExpenses).Methods("GET")
	r.HandleFunc("/api/expenses/import", s.importExpenses).Methods("POST")
	r.HandleFunc("/api/expenses/{id:[0-9]+}", s.getExpense).Methods("GET")
	r.HandleFunc("/api/expenses/{id:[0-9]+}", s.updateExpense).Methods("PUT")
	r.HandleFunc("/api/expenses/{id:[0-9]+}", s.deleteExpense).Methods("DELETE")

	r.HandleFunc("/api/budgets", s.listBudgets).Methods("GET")
	r.HandleFunc("/api/budgets", s.createBudget).Methods("POST")
	r.HandleFunc("/api/budgets/active", s.getActiveBudget).Methods("GET")
	r.HandleFunc("/api/budgets/{id:[0-9]+}", s.getBudget).Methods("GET")
	r.HandleFunc("/api/budgets/{id:[0-9]+}", s.updateBudget).Methods("PUT")
	r.HandleFunc("/api/budgets/{id:[0-9]+}", s.deleteBudget).Methods("DELETE")
	r.HandleFunc("/api/budgets/{id:[0-9]+}/activate", s.activateBudget).Methods("POST")

	r.HandleFunc("/api/goals", s.listGoals).Methods("GET")
	r.HandleFunc("/api/goals", s.createGoal).Methods("POST")
	r.HandleFunc("/api/goals/{id:[0-9]+}", s.getGoal).Methods("GET")
	r.HandleFunc("/api/goals/{id:[0-9]+}", s.updateGoal).Methods("PUT")
	r.HandleFunc("/api/goals/{id:[0-9]+}", s.deleteGoal).Methods("DELETE")
	r.HandleFunc("/api/goals/{id:[0-9]+}/contributions", s.addGoalContribution).Methods("POST")

	r.HandleFunc("/api/accounts", s.listAccounts).Methods("GET")
	r.HandleFunc("/api/accounts", s.createAccount).Methods("POST")
	r.HandleFunc("/api/accounts/{id:[0-9]+}", s.getAccount).Methods("GET")
	r.HandleFunc("/api/accounts/{id:[0-9]+}", s.updateAccount).Methods("PUT")
	r.HandleFunc("/api/accounts/{id:[0-9]+}", s.deleteAccount).Methods("DELETE")

	r.HandleFunc("/api/profile", s.getProfile).Methods("GET")
	r.HandleFunc("/api/profile", s.updateProfile).Methods("PUT")

	r.HandleFunc("/api/categories", s.listCategories).Methods("GET")
	r.HandleFunc("/api/categories/suggest", s.suggestCategory).Methods("POST")

	r.HandleFunc("/api/reports/dashboard", s.dashboard).Methods("GET")
	r.HandleFunc("/api/reports/budget-progress", s.budgetProgress).Methods("GET")
	r.HandleFunc("/api/reports/spending", s.spendingSeries).Methods("GET")
	r.HandleFunc("/api/reports/category-chart", s.categoryChart).Methods("GET")

	r.HandleFunc("/healthz", s.health).Methods("GET")
}

// Handler returns the HTTP handler with tracing enabled.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "moneypulse")
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.requestCounter != nil {
			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			s.requestCounter.Add(r.Context(), 1,
				metric.WithAttributes(
					attribute.String("http.route", route),
					attribute.String("http.method", r.Method),
				))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, models.Categories)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Error().Err(err).Msg("failed to encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError maps the error taxonomy to HTTP statuses: validation failures
// are 400 with the offending field, missing records are 404, everything else
// is a 500 from the storage collaborator.
func respondError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, models.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "record not found"})
	default:
		logger.Log.Error().Err(err).Msg("request failed")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("body", "invalid JSON")
	}
	return nil
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, models.NewValidationError("id", "must be an integer")
	}
	return id, nil
}

// parseDate accepts a calendar date or an RFC3339 timestamp, returning the
// calendar date.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return models.DateOnly(t), nil
		}
	}
	return time.Time{}, models.NewValidationError("date", "must be YYYY-MM-DD")
}
