package api

import (
	"net/http"

	"moneypulse/internal/models"
)

type suggestRequest struct {
	Description string `json:"description"`
}

// suggestCategory proxies the description to the configured suggester. Without
// a GEMINI_API_KEY the feature is disabled and the endpoint answers 503.
func (s *Server) suggestCategory(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "category suggestions are not configured"})
		return
	}

	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Description == "" {
		respondError(w, models.NewValidationError("description", "is required"))
		return
	}

	suggestion, err := s.suggester.SuggestCategory(r.Context(), req.Description, models.Categories)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, suggestion)
}
