package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ledger/internal/models"
	"ledger/internal/money"
)

type createAccountRequest struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	TypeCode       string  `json:"type_code"`
	ParentID       *string `json:"parent_id,omitempty"`
	IsReconcilable bool    `json:"is_reconcilable,omitempty"`
	IsTaxAccount   bool    `json:"is_tax_account,omitempty"`
	TaxType        *string `json:"tax_type,omitempty"`
	TaxRate        string  `json:"tax_rate,omitempty"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	account := models.Account{
		Code:           req.Code,
		Name:           req.Name,
		TypeCode:       req.TypeCode,
		ParentID:       req.ParentID,
		IsReconcilable: req.IsReconcilable,
		IsTaxAccount:   req.IsTaxAccount,
		TaxType:        req.TaxType,
	}
	if req.TaxRate != "" {
		rate, err := money.Parse(req.TaxRate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		account.TaxRate = &rate
	}
	created, err := h.setup.CreateAccount(r.Context(), account)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.setup.ListAccounts(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

func (h *Handler) ListAccountTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.setup.ListAccountTypes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (h *Handler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.setup.DeactivateAccount(r.Context(), chi.URLParam(r, "code")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

type createJournalRequest struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	SequenceTemplate string `json:"sequence_template"`
}

func (h *Handler) CreateJournal(w http.ResponseWriter, r *http.Request) {
	var req createJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	journal, err := h.setup.CreateJournal(r.Context(), models.Journal{
		Code:             req.Code,
		Name:             req.Name,
		Type:             req.Type,
		SequenceTemplate: req.SequenceTemplate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, journal)
}

func (h *Handler) ListJournals(w http.ResponseWriter, r *http.Request) {
	journals, err := h.setup.ListJournals(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, journals)
}
