package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledger/internal/money"
)

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseOptionalDate(r.URL.Query().Get("start_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	endDate, err := parseOptionalDate(r.URL.Query().Get("end_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	balance, err := h.balances.Balance(r.Context(), chi.URLParam(r, "code"), startDate, endDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"account": chi.URLParam(r, "code"),
		"balance": money.Format(balance),
	})
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseOptionalDate(r.URL.Query().Get("start_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	endDate, err := parseOptionalDate(r.URL.Query().Get("end_date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	balances, err := h.balances.AccountBalances(r.Context(), startDate, endDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balances)
}
