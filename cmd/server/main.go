package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"ledger/internal/config"
	"ledger/internal/db"
	"ledger/internal/handlers"
	"ledger/internal/services"
	"ledger/internal/store"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer database.Close()

	accounts := store.NewAccountStore(database)
	journals := store.NewJournalStore(database)
	fiscal := store.NewFiscalStore(database)
	entries := store.NewEntryStore(database)
	reconciliations := store.NewReconciliationStore(database)
	assets := store.NewAssetStore(database)
	txRunner := db.NewTxRunner(database)

	calendar := services.NewCalendarService(txRunner, fiscal)
	sequence := services.NewSequenceGenerator(journals)
	reconciler := services.NewReconcileService(txRunner, accounts, entries, reconciliations)
	entryService := services.NewEntryService(txRunner, accounts, journals, calendar, entries, sequence, reconciler)
	assetService := services.NewAssetService(txRunner, assets, accounts, entryService)
	balanceService := services.NewBalanceService(accounts, entries)
	setupService := services.NewSetupService(txRunner, accounts, journals)

	handler := handlers.New(cfg, entryService, reconciler, assetService, balanceService, calendar, setupService)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("ledger API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("ledger API stopped")
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
