package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/config"
	"ledger/internal/models"
	"ledger/internal/services"
)

type stubEntryService struct {
	createFn func(ctx context.Context, req services.CreateEntryRequest) (models.JournalEntry, error)
	postFn   func(ctx context.Context, entryID string) error
	cancelFn func(ctx context.Context, entryID string) error
	getFn    func(ctx context.Context, entryID string) (models.JournalEntry, []models.JournalEntryLine, error)
}

func (s stubEntryService) CreateEntry(ctx context.Context, req services.CreateEntryRequest) (models.JournalEntry, error) {
	if s.createFn == nil {
		return models.JournalEntry{}, nil
	}
	return s.createFn(ctx, req)
}

func (s stubEntryService) Post(ctx context.Context, entryID string) error {
	if s.postFn == nil {
		return nil
	}
	return s.postFn(ctx, entryID)
}

func (s stubEntryService) Cancel(ctx context.Context, entryID string) error {
	if s.cancelFn == nil {
		return nil
	}
	return s.cancelFn(ctx, entryID)
}

func (s stubEntryService) Get(ctx context.Context, entryID string) (models.JournalEntry, []models.JournalEntryLine, error) {
	if s.getFn == nil {
		return models.JournalEntry{}, nil, nil
	}
	return s.getFn(ctx, entryID)
}

type stubReconcileService struct {
	reconcileFn func(ctx context.Context, lineIDs []string, actor string) (models.Reconciliation, error)
	deleteFn    func(ctx context.Context, reconciliationID string) error
}

func (s stubReconcileService) Reconcile(ctx context.Context, lineIDs []string, actor string) (models.Reconciliation, error) {
	if s.reconcileFn == nil {
		return models.Reconciliation{}, nil
	}
	return s.reconcileFn(ctx, lineIDs, actor)
}

func (s stubReconcileService) DeleteReconciliation(ctx context.Context, reconciliationID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, reconciliationID)
}

type stubAssetService struct {
	computeFn func(ctx context.Context, assetID string) ([]models.AssetDepreciation, error)
	listFn    func(ctx context.Context, assetID string) ([]models.AssetDepreciation, error)
	postFn    func(ctx context.Context, lineID, journalCode string, postingDate time.Time, actor string) (models.JournalEntry, error)
	closeFn   func(ctx context.Context, assetID, state string) error
}

func (s stubAssetService) ComputeBoard(ctx context.Context, assetID string) ([]models.AssetDepreciation, error) {
	if s.computeFn == nil {
		return nil, nil
	}
	return s.computeFn(ctx, assetID)
}

func (s stubAssetService) ListBoard(ctx context.Context, assetID string) ([]models.AssetDepreciation, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, assetID)
}

func (s stubAssetService) PostDepreciationLine(ctx context.Context, lineID, journalCode string, postingDate time.Time, actor string) (models.JournalEntry, error) {
	if s.postFn == nil {
		return models.JournalEntry{}, nil
	}
	return s.postFn(ctx, lineID, journalCode, postingDate, actor)
}

func (s stubAssetService) CloseAsset(ctx context.Context, assetID, state string) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx, assetID, state)
}

type stubBalanceService struct {
	balanceFn  func(ctx context.Context, accountCode string, startDate, endDate *time.Time) (decimal.Decimal, error)
	balancesFn func(ctx context.Context, startDate, endDate *time.Time) ([]services.AccountBalance, error)
}

func (s stubBalanceService) Balance(ctx context.Context, accountCode string, startDate, endDate *time.Time) (decimal.Decimal, error) {
	if s.balanceFn == nil {
		return decimal.Zero, nil
	}
	return s.balanceFn(ctx, accountCode, startDate, endDate)
}

func (s stubBalanceService) AccountBalances(ctx context.Context, startDate, endDate *time.Time) ([]services.AccountBalance, error) {
	if s.balancesFn == nil {
		return nil, nil
	}
	return s.balancesFn(ctx, startDate, endDate)
}

type stubCalendarService struct {
	createYearFn      func(ctx context.Context, name string, startDate, endDate time.Time) (models.FiscalYear, error)
	generatePeriodsFn func(ctx context.Context, yearID string) ([]models.FiscalPeriod, error)
	openYearFn        func(ctx context.Context, yearID string) error
	closeYearFn       func(ctx context.Context, yearID string) error
	closePeriodFn     func(ctx context.Context, periodID string) error
	listPeriodsFn     func(ctx context.Context, yearID string) ([]models.FiscalPeriod, error)
}

func (s stubCalendarService) CreateYear(ctx context.Context, name string, startDate, endDate time.Time) (models.FiscalYear, error) {
	if s.createYearFn == nil {
		return models.FiscalYear{}, nil
	}
	return s.createYearFn(ctx, name, startDate, endDate)
}

func (s stubCalendarService) GeneratePeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error) {
	if s.generatePeriodsFn == nil {
		return nil, nil
	}
	return s.generatePeriodsFn(ctx, yearID)
}

func (s stubCalendarService) OpenYear(ctx context.Context, yearID string) error {
	if s.openYearFn == nil {
		return nil
	}
	return s.openYearFn(ctx, yearID)
}

func (s stubCalendarService) CloseYear(ctx context.Context, yearID string) error {
	if s.closeYearFn == nil {
		return nil
	}
	return s.closeYearFn(ctx, yearID)
}

func (s stubCalendarService) ClosePeriod(ctx context.Context, periodID string) error {
	if s.closePeriodFn == nil {
		return nil
	}
	return s.closePeriodFn(ctx, periodID)
}

func (s stubCalendarService) ListPeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error) {
	if s.listPeriodsFn == nil {
		return nil, nil
	}
	return s.listPeriodsFn(ctx, yearID)
}

type stubSetupService struct {
	createAccountFn func(ctx context.Context, account models.Account) (models.Account, error)
	createJournalFn func(ctx context.Context, journal models.Journal) (models.Journal, error)
}

func (s stubSetupService) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if s.createAccountFn == nil {
		return account, nil
	}
	return s.createAccountFn(ctx, account)
}

func (s stubSetupService) ListAccounts(context.Context) ([]models.Account, error) {
	return nil, nil
}

func (s stubSetupService) ListAccountTypes(context.Context) ([]models.AccountType, error) {
	return nil, nil
}

func (s stubSetupService) DeactivateAccount(context.Context, string) error {
	return nil
}

func (s stubSetupService) CreateJournal(ctx context.Context, journal models.Journal) (models.Journal, error) {
	if s.createJournalFn == nil {
		return journal, nil
	}
	return s.createJournalFn(ctx, journal)
}

func (s stubSetupService) ListJournals(context.Context) ([]models.Journal, error) {
	return nil, nil
}

func newTestHandler(entries EntryService, reconcile ReconcileService, assets AssetService, balances BalanceService, calendar CalendarService) *Handler {
	cfg := config.Config{AllowedOrigins: "*"}
	return New(cfg, entries, reconcile, assets, balances, calendar, stubSetupService{})
}
