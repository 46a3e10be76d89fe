package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/entries", func(r chi.Router) {
		r.Post("/", h.CreateEntry)
		r.Get("/{id}", h.GetEntry)
		r.Post("/{id}/post", h.PostEntry)
		r.Post("/{id}/cancel", h.CancelEntry)
	})

	router.Post("/reconciliations", h.Reconcile)
	router.Delete("/reconciliations/{id}", h.DeleteReconciliation)

	router.Route("/assets", func(r chi.Router) {
		r.Post("/{id}/board", h.ComputeBoard)
		r.Get("/{id}/board", h.ListBoard)
		r.Post("/{id}/close", h.CloseAsset)
	})
	router.Post("/depreciations/{id}/post", h.PostDepreciationLine)

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.CreateAccount)
		r.Get("/", h.ListAccounts)
		r.Get("/balances", h.TrialBalance)
		r.Get("/{code}/balance", h.GetBalance)
		r.Post("/{code}/deactivate", h.DeactivateAccount)
	})
	router.Get("/account-types", h.ListAccountTypes)

	router.Route("/journals", func(r chi.Router) {
		r.Post("/", h.CreateJournal)
		r.Get("/", h.ListJournals)
	})

	router.Route("/fiscal-years", func(r chi.Router) {
		r.Post("/", h.CreateYear)
		r.Post("/{id}/periods", h.GeneratePeriods)
		r.Get("/{id}/periods", h.ListPeriods)
		r.Post("/{id}/open", h.OpenYear)
		r.Post("/{id}/close", h.CloseYear)
	})
	router.Post("/fiscal-periods/{id}/close", h.ClosePeriod)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
