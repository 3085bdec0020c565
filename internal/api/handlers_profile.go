package api

import (
	"net/http"

	"moneypulse/internal/models"
)

type profileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Website   string `json:"website"`
	Currency  string `json:"currency"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profile.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// updateProfile modifies the single profile row. The profile is seeded at
// startup, so a missing row surfaces as 404 rather than creating one here.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	current, err := s.profile.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	current.Name = req.Name
	current.AvatarURL = req.AvatarURL
	current.Website = req.Website
	if req.Currency != "" {
		current.Currency = req.Currency
	}
	if current.Currency == "" {
		current.Currency = models.DefaultCurrency
	}

	if err := s.profile.Update(r.Context(), current); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, current)
}
