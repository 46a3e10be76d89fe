package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/models"
	"ledger/internal/services"
)

type EntryService interface {
	CreateEntry(ctx context.Context, req services.CreateEntryRequest) (models.JournalEntry, error)
	Post(ctx context.Context, entryID string) error
	Cancel(ctx context.Context, entryID string) error
	Get(ctx context.Context, entryID string) (models.JournalEntry, []models.JournalEntryLine, error)
}

type ReconcileService interface {
	Reconcile(ctx context.Context, lineIDs []string, actor string) (models.Reconciliation, error)
	DeleteReconciliation(ctx context.Context, reconciliationID string) error
}

type AssetService interface {
	ComputeBoard(ctx context.Context, assetID string) ([]models.AssetDepreciation, error)
	ListBoard(ctx context.Context, assetID string) ([]models.AssetDepreciation, error)
	PostDepreciationLine(ctx context.Context, lineID, journalCode string, postingDate time.Time, actor string) (models.JournalEntry, error)
	CloseAsset(ctx context.Context, assetID, state string) error
}

type BalanceService interface {
	Balance(ctx context.Context, accountCode string, startDate, endDate *time.Time) (decimal.Decimal, error)
	AccountBalances(ctx context.Context, startDate, endDate *time.Time) ([]services.AccountBalance, error)
}

type SetupService interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountTypes(ctx context.Context) ([]models.AccountType, error)
	DeactivateAccount(ctx context.Context, code string) error
	CreateJournal(ctx context.Context, journal models.Journal) (models.Journal, error)
	ListJournals(ctx context.Context) ([]models.Journal, error)
}

type CalendarService interface {
	CreateYear(ctx context.Context, name string, startDate, endDate time.Time) (models.FiscalYear, error)
	GeneratePeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error)
	OpenYear(ctx context.Context, yearID string) error
	CloseYear(ctx context.Context, yearID string) error
	ClosePeriod(ctx context.Context, periodID string) error
	ListPeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error)
}
