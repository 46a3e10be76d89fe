package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ledger/internal/config"
	"ledger/internal/services"
)

type Handler struct {
	cfg       config.Config
	entries   EntryService
	reconcile ReconcileService
	assets    AssetService
	balances  BalanceService
	calendar  CalendarService
	setup     SetupService
}

func New(cfg config.Config, entries EntryService, reconcile ReconcileService, assets AssetService, balances BalanceService, calendar CalendarService, setup SetupService) *Handler {
	return &Handler{
		cfg:       cfg,
		entries:   entries,
		reconcile: reconcile,
		assets:    assets,
		balances:  balances,
		calendar:  calendar,
		setup:     setup,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the core's sentinel errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, services.ErrInvalidState):
		respondError(w, http.StatusConflict, "invalid_state")
	case errors.Is(err, services.ErrReconciledLines):
		respondError(w, http.StatusConflict, "reconciled_lines")
	case errors.Is(err, services.ErrAlreadyReconciled):
		respondError(w, http.StatusConflict, "already_reconciled")
	case errors.Is(err, services.ErrAssetClosed):
		respondError(w, http.StatusConflict, "asset_closed")
	case errors.Is(err, services.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, services.ErrNoOpenPeriod):
		respondError(w, http.StatusBadRequest, "no_open_period")
	case errors.Is(err, services.ErrInvalidLine):
		respondError(w, http.StatusBadRequest, "invalid_line")
	case errors.Is(err, services.ErrEmptyEntry):
		respondError(w, http.StatusBadRequest, "empty_entry")
	case errors.Is(err, services.ErrUnbalanced):
		respondError(w, http.StatusBadRequest, "unbalanced")
	case errors.Is(err, services.ErrAccountMismatch):
		respondError(w, http.StatusBadRequest, "account_mismatch")
	case errors.Is(err, services.ErrNotReconcilable):
		respondError(w, http.StatusBadRequest, "not_reconcilable")
	case errors.Is(err, services.ErrImbalancedGroup):
		respondError(w, http.StatusBadRequest, "imbalanced_group")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error")
	}
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
