package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type reconcileRequest struct {
	LineIDs []string `json:"line_ids"`
	Actor   string   `json:"actor,omitempty"`
}

func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.LineIDs) == 0 {
		respondError(w, http.StatusBadRequest, "line_ids is required")
		return
	}
	rec, err := h.reconcile.Reconcile(r.Context(), req.LineIDs, req.Actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) DeleteReconciliation(w http.ResponseWriter, r *http.Request) {
	if err := h.reconcile.DeleteReconciliation(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
