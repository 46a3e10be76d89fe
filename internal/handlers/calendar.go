package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createYearRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *Handler) CreateYear(w http.ResponseWriter, r *http.Request) {
	var req createYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	year, err := h.calendar.CreateYear(r.Context(), req.Name, startDate, endDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, year)
}

func (h *Handler) GeneratePeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.calendar.GeneratePeriods(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, periods)
}

func (h *Handler) OpenYear(w http.ResponseWriter, r *http.Request) {
	if err := h.calendar.OpenYear(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": "open"})
}

func (h *Handler) CloseYear(w http.ResponseWriter, r *http.Request) {
	if err := h.calendar.CloseYear(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": "closed"})
}

func (h *Handler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.calendar.ClosePeriod(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": "closed"})
}

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.calendar.ListPeriods(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, periods)
}
