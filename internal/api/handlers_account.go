package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"moneypulse/internal/models"
)

type accountRequest struct {
	Name          string          `json:"name"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Currency      string          `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
	Tags          string          `json:"tags"`
}

func (req *accountRequest) toModel() (*models.BankAccount, error) {
	account := &models.BankAccount{
		Name:          req.Name,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
		Currency:      req.Currency,
		Balance:       req.Balance,
		Tags:          req.Tags,
	}
	if account.Currency == "" {
		account.Currency = models.DefaultCurrency
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.accounts.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if accounts == nil {
		accounts = []models.BankAccount{}
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	account, err := s.accounts.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	account, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.accounts.Create(r.Context(), account); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req accountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	account, err := req.toModel()
	if err != nil {
		respondError(w, err)
		return
	}
	account.ID = id
	if err := s.accounts.Update(r.Context(), account); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.accounts.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
