package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"ledger/internal/money"
	"ledger/internal/services"
)

type entryLineRequest struct {
	AccountCode     string  `json:"account_code"`
	Name            string  `json:"name"`
	Debit           string  `json:"debit,omitempty"`
	Credit          string  `json:"credit,omitempty"`
	Partner         string  `json:"partner,omitempty"`
	Currency        *string `json:"currency,omitempty"`
	AmountCurrency  string  `json:"amount_currency,omitempty"`
	DateMaturity    string  `json:"date_maturity,omitempty"`
	AnalyticAccount *string `json:"analytic_account,omitempty"`
	TaxLineID       *string `json:"tax_line_id,omitempty"`
	TaxBaseAmount   string  `json:"tax_base_amount,omitempty"`
}

type createEntryRequest struct {
	JournalCode string             `json:"journal_code"`
	Date        string             `json:"date"`
	Ref         string             `json:"ref,omitempty"`
	Narration   string             `json:"narration,omitempty"`
	IsManual    bool               `json:"is_manual,omitempty"`
	Actor       string             `json:"actor,omitempty"`
	Source      *sourceRef         `json:"source,omitempty"`
	Lines       []entryLineRequest `json:"lines"`
}

type sourceRef struct {
	Module string `json:"module"`
	Model  string `json:"model"`
	ID     string `json:"id"`
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.JournalCode == "" {
		respondError(w, http.StatusBadRequest, "journal_code is required")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	lines := make([]services.EntryLineRequest, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		line, err := toLineRequest(lineReq)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_amount")
			return
		}
		lines = append(lines, line)
	}
	serviceReq := services.CreateEntryRequest{
		JournalCode: req.JournalCode,
		Date:        date,
		Ref:         req.Ref,
		Narration:   req.Narration,
		IsManual:    req.IsManual,
		Actor:       req.Actor,
		Lines:       lines,
	}
	if req.Source != nil {
		serviceReq.Source = &services.SourceRef{Module: req.Source.Module, Model: req.Source.Model, ID: req.Source.ID}
	}
	entry, err := h.entries.CreateEntry(r.Context(), serviceReq)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) PostEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.entries.Post(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": "posted"})
}

func (h *Handler) CancelEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.entries.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": "cancel"})
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, lines, err := h.entries.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"entry": entry, "lines": lines})
}

func toLineRequest(req entryLineRequest) (services.EntryLineRequest, error) {
	line := services.EntryLineRequest{
		AccountCode:     req.AccountCode,
		Name:            req.Name,
		Partner:         req.Partner,
		Currency:        req.Currency,
		AnalyticAccount: req.AnalyticAccount,
		TaxLineID:       req.TaxLineID,
	}
	var err error
	if line.Debit, err = parseOptionalAmount(req.Debit); err != nil {
		return services.EntryLineRequest{}, err
	}
	if line.Credit, err = parseOptionalAmount(req.Credit); err != nil {
		return services.EntryLineRequest{}, err
	}
	if req.AmountCurrency != "" {
		amount, err := money.Parse(req.AmountCurrency)
		if err != nil {
			return services.EntryLineRequest{}, err
		}
		line.AmountCurrency = &amount
	}
	if req.TaxBaseAmount != "" {
		amount, err := money.Parse(req.TaxBaseAmount)
		if err != nil {
			return services.EntryLineRequest{}, err
		}
		line.TaxBaseAmount = &amount
	}
	if line.DateMaturity, err = parseOptionalDate(req.DateMaturity); err != nil {
		return services.EntryLineRequest{}, err
	}
	return line, nil
}

func parseOptionalAmount(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return money.Parse(value)
}
