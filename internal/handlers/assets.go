package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ComputeBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.assets.ComputeBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

func (h *Handler) ListBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.assets.ListBoard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

type postDepreciationRequest struct {
	JournalCode string `json:"journal_code"`
	Date        string `json:"date"`
	Actor       string `json:"actor,omitempty"`
}

func (h *Handler) PostDepreciationLine(w http.ResponseWriter, r *http.Request) {
	var req postDepreciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	entry, err := h.assets.PostDepreciationLine(r.Context(), chi.URLParam(r, "id"), req.JournalCode, date, req.Actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

type closeAssetRequest struct {
	State string `json:"state"`
}

func (h *Handler) CloseAsset(w http.ResponseWriter, r *http.Request) {
	var req closeAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.assets.CloseAsset(r.Context(), chi.URLParam(r, "id"), req.State); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": req.State})
}
