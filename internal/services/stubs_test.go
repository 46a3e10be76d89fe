package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ledger/internal/models"
	"ledger/internal/store"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubAccountLookup struct {
	getByCodeFn func(ctx context.Context, code string) (models.Account, error)
	getByIDFn   func(ctx context.Context, accountID string) (models.Account, error)
}

func (s stubAccountLookup) GetByCode(ctx context.Context, code string) (models.Account, error) {
	return s.getByCodeFn(ctx, code)
}

func (s stubAccountLookup) GetByID(ctx context.Context, accountID string) (models.Account, error) {
	return s.getByIDFn(ctx, accountID)
}

type stubJournalStore struct {
	getByCodeFn     func(ctx context.Context, code string) (models.Journal, error)
	lastEntryNameFn func(ctx context.Context, tx store.Getter, journalID string, yearStart, yearEnd time.Time) (string, error)
}

func (s stubJournalStore) GetByCode(ctx context.Context, code string) (models.Journal, error) {
	return s.getByCodeFn(ctx, code)
}

func (s stubJournalStore) LastEntryName(ctx context.Context, tx store.Getter, journalID string, yearStart, yearEnd time.Time) (string, error) {
	return s.lastEntryNameFn(ctx, tx, journalID, yearStart, yearEnd)
}

type stubPeriodResolver struct {
	resolveFn func(ctx context.Context, date time.Time) (models.FiscalPeriod, error)
}

func (s stubPeriodResolver) ResolvePeriod(ctx context.Context, date time.Time) (models.FiscalPeriod, error) {
	return s.resolveFn(ctx, date)
}

type stubEntryStore struct {
	insertFn             func(ctx context.Context, tx store.Execer, entry models.JournalEntry) error
	insertLinesFn        func(ctx context.Context, tx store.Execer, lines []models.JournalEntryLine) error
	getByIDFn            func(ctx context.Context, entryID string) (models.JournalEntry, error)
	getLinesFn           func(ctx context.Context, entryID string) ([]models.JournalEntryLine, error)
	getLinesByIDsFn      func(ctx context.Context, lineIDs []string) ([]models.JournalEntryLine, error)
	updateStateFn        func(ctx context.Context, tx store.Execer, entryID, state string) error
	markReconciledFn     func(ctx context.Context, tx store.Execer, lineIDs []string, reconciliationID string) error
	unmarkReconciledFn   func(ctx context.Context, tx store.Execer, reconciliationID string) error
	findMatchCandidateFn func(ctx context.Context, accountID, excludeEntryID string, amount decimal.Decimal) (models.JournalEntryLine, error)
}

func (s stubEntryStore) Insert(ctx context.Context, tx store.Execer, entry models.JournalEntry) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, entry)
}

func (s stubEntryStore) InsertLines(ctx context.Context, tx store.Execer, lines []models.JournalEntryLine) error {
	if s.insertLinesFn == nil {
		return nil
	}
	return s.insertLinesFn(ctx, tx, lines)
}

func (s stubEntryStore) GetByID(ctx context.Context, entryID string) (models.JournalEntry, error) {
	return s.getByIDFn(ctx, entryID)
}

func (s stubEntryStore) GetLines(ctx context.Context, entryID string) ([]models.JournalEntryLine, error) {
	return s.getLinesFn(ctx, entryID)
}

func (s stubEntryStore) GetLinesByIDs(ctx context.Context, lineIDs []string) ([]models.JournalEntryLine, error) {
	return s.getLinesByIDsFn(ctx, lineIDs)
}

func (s stubEntryStore) UpdateState(ctx context.Context, tx store.Execer, entryID, state string) error {
	if s.updateStateFn == nil {
		return nil
	}
	return s.updateStateFn(ctx, tx, entryID, state)
}

func (s stubEntryStore) MarkLinesReconciled(ctx context.Context, tx store.Execer, lineIDs []string, reconciliationID string) error {
	if s.markReconciledFn == nil {
		return nil
	}
	return s.markReconciledFn(ctx, tx, lineIDs, reconciliationID)
}

func (s stubEntryStore) UnmarkReconciled(ctx context.Context, tx store.Execer, reconciliationID string) error {
	if s.unmarkReconciledFn == nil {
		return nil
	}
	return s.unmarkReconciledFn(ctx, tx, reconciliationID)
}

func (s stubEntryStore) FindMatchCandidate(ctx context.Context, accountID, excludeEntryID string, amount decimal.Decimal) (models.JournalEntryLine, error) {
	return s.findMatchCandidateFn(ctx, accountID, excludeEntryID, amount)
}

type stubReconciliationStore struct {
	insertFn  func(ctx context.Context, tx store.Execer, rec models.Reconciliation) error
	getByIDFn func(ctx context.Context, reconciliationID string) (models.Reconciliation, error)
	deleteFn  func(ctx context.Context, tx store.Execer, reconciliationID string) error
}

func (s stubReconciliationStore) Insert(ctx context.Context, tx store.Execer, rec models.Reconciliation) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, rec)
}

func (s stubReconciliationStore) GetByID(ctx context.Context, reconciliationID string) (models.Reconciliation, error) {
	return s.getByIDFn(ctx, reconciliationID)
}

func (s stubReconciliationStore) Delete(ctx context.Context, tx store.Execer, reconciliationID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, reconciliationID)
}

type stubFiscalStore struct {
	createYearFn        func(ctx context.Context, tx store.Execer, year models.FiscalYear) error
	getYearFn           func(ctx context.Context, yearID string) (models.FiscalYear, error)
	updateYearStateFn   func(ctx context.Context, tx store.Execer, yearID, state string) error
	insertPeriodsFn     func(ctx context.Context, tx store.Execer, periods []models.FiscalPeriod) error
	listPeriodsFn       func(ctx context.Context, yearID string) ([]models.FiscalPeriod, error)
	countPeriodsFn      func(ctx context.Context, yearID string) (int, error)
	countNotInStateFn   func(ctx context.Context, yearID, state string) (int, error)
	updatePeriodStateFn func(ctx context.Context, tx store.Execer, periodID, state string) error
	updateByYearFn      func(ctx context.Context, tx store.Execer, yearID, from, to string) error
	resolveOpenFn       func(ctx context.Context, date time.Time) (models.FiscalPeriod, error)
}

func (s stubFiscalStore) CreateYear(ctx context.Context, tx store.Execer, year models.FiscalYear) error {
	if s.createYearFn == nil {
		return nil
	}
	return s.createYearFn(ctx, tx, year)
}

func (s stubFiscalStore) GetYear(ctx context.Context, yearID string) (models.FiscalYear, error) {
	return s.getYearFn(ctx, yearID)
}

func (s stubFiscalStore) UpdateYearState(ctx context.Context, tx store.Execer, yearID, state string) error {
	if s.updateYearStateFn == nil {
		return nil
	}
	return s.updateYearStateFn(ctx, tx, yearID, state)
}

func (s stubFiscalStore) InsertPeriods(ctx context.Context, tx store.Execer, periods []models.FiscalPeriod) error {
	if s.insertPeriodsFn == nil {
		return nil
	}
	return s.insertPeriodsFn(ctx, tx, periods)
}

func (s stubFiscalStore) ListPeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error) {
	return s.listPeriodsFn(ctx, yearID)
}

func (s stubFiscalStore) CountPeriods(ctx context.Context, yearID string) (int, error) {
	if s.countPeriodsFn == nil {
		return 0, nil
	}
	return s.countPeriodsFn(ctx, yearID)
}

func (s stubFiscalStore) CountPeriodsNotInState(ctx context.Context, yearID, state string) (int, error) {
	if s.countNotInStateFn == nil {
		return 0, nil
	}
	return s.countNotInStateFn(ctx, yearID, state)
}

func (s stubFiscalStore) UpdatePeriodState(ctx context.Context, tx store.Execer, periodID, state string) error {
	if s.updatePeriodStateFn == nil {
		return nil
	}
	return s.updatePeriodStateFn(ctx, tx, periodID, state)
}

func (s stubFiscalStore) UpdatePeriodStatesByYear(ctx context.Context, tx store.Execer, yearID, from, to string) error {
	if s.updateByYearFn == nil {
		return nil
	}
	return s.updateByYearFn(ctx, tx, yearID, from, to)
}

func (s stubFiscalStore) ResolveOpenPeriod(ctx context.Context, date time.Time) (models.FiscalPeriod, error) {
	return s.resolveOpenFn(ctx, date)
}

type stubAssetStore struct {
	createCategoryFn func(ctx context.Context, tx store.Execer, category models.AssetCategory) error
	getCategoryFn    func(ctx context.Context, categoryID string) (models.AssetCategory, error)
	createAssetFn    func(ctx context.Context, tx store.Execer, asset models.Asset) error
	getAssetFn       func(ctx context.Context, assetID string) (models.Asset, error)
	updateStateFn    func(ctx context.Context, tx store.Execer, assetID, state string) error
	deleteDepsFn     func(ctx context.Context, tx store.Execer, assetID string) error
	insertDepsFn     func(ctx context.Context, tx store.Execer, lines []models.AssetDepreciation) error
	listDepsFn       func(ctx context.Context, assetID string) ([]models.AssetDepreciation, error)
	getDepFn         func(ctx context.Context, lineID string) (models.AssetDepreciation, error)
	markPostedFn     func(ctx context.Context, tx store.Execer, lineID, entryID string) error
}

func (s stubAssetStore) CreateCategory(ctx context.Context, tx store.Execer, category models.AssetCategory) error {
	if s.createCategoryFn == nil {
		return nil
	}
	return s.createCategoryFn(ctx, tx, category)
}

func (s stubAssetStore) GetCategory(ctx context.Context, categoryID string) (models.AssetCategory, error) {
	return s.getCategoryFn(ctx, categoryID)
}

func (s stubAssetStore) CreateAsset(ctx context.Context, tx store.Execer, asset models.Asset) error {
	if s.createAssetFn == nil {
		return nil
	}
	return s.createAssetFn(ctx, tx, asset)
}

func (s stubAssetStore) GetAsset(ctx context.Context, assetID string) (models.Asset, error) {
	return s.getAssetFn(ctx, assetID)
}

func (s stubAssetStore) UpdateAssetState(ctx context.Context, tx store.Execer, assetID, state string) error {
	if s.updateStateFn == nil {
		return nil
	}
	return s.updateStateFn(ctx, tx, assetID, state)
}

func (s stubAssetStore) DeleteDepreciations(ctx context.Context, tx store.Execer, assetID string) error {
	if s.deleteDepsFn == nil {
		return nil
	}
	return s.deleteDepsFn(ctx, tx, assetID)
}

func (s stubAssetStore) InsertDepreciations(ctx context.Context, tx store.Execer, lines []models.AssetDepreciation) error {
	if s.insertDepsFn == nil {
		return nil
	}
	return s.insertDepsFn(ctx, tx, lines)
}

func (s stubAssetStore) ListDepreciations(ctx context.Context, assetID string) ([]models.AssetDepreciation, error) {
	return s.listDepsFn(ctx, assetID)
}

func (s stubAssetStore) GetDepreciation(ctx context.Context, lineID string) (models.AssetDepreciation, error) {
	return s.getDepFn(ctx, lineID)
}

func (s stubAssetStore) MarkDepreciationPosted(ctx context.Context, tx store.Execer, lineID, entryID string) error {
	if s.markPostedFn == nil {
		return nil
	}
	return s.markPostedFn(ctx, tx, lineID, entryID)
}

type stubReconciler struct {
	autoFn func(ctx context.Context, entryID string) error
}

func (s stubReconciler) AutoReconcile(ctx context.Context, entryID string) error {
	if s.autoFn == nil {
		return nil
	}
	return s.autoFn(ctx, entryID)
}

func amount(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

type stubEntryCreator struct {
	createFn func(ctx context.Context, req CreateEntryRequest) (models.JournalEntry, error)
	postFn   func(ctx context.Context, entryID string) error
}

func (s stubEntryCreator) CreateEntry(ctx context.Context, req CreateEntryRequest) (models.JournalEntry, error) {
	return s.createFn(ctx, req)
}

func (s stubEntryCreator) Post(ctx context.Context, entryID string) error {
	if s.postFn == nil {
		return nil
	}
	return s.postFn(ctx, entryID)
}
