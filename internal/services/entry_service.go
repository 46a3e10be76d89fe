package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ledger/internal/db"
	"ledger/internal/models"
	"ledger/internal/money"
	"ledger/internal/store"
)

type AccountLookup interface {
	GetByCode(ctx context.Context, code string) (models.Account, error)
	GetByID(ctx context.Context, accountID string) (models.Account, error)
}

type JournalStore interface {
	JournalLookup
	GetByCode(ctx context.Context, code string) (models.Journal, error)
}

type PeriodResolver interface {
	ResolvePeriod(ctx context.Context, date time.Time) (models.FiscalPeriod, error)
}

type EntryStore interface {
	Insert(ctx context.Context, tx store.Execer, entry models.JournalEntry) error
	InsertLines(ctx context.Context, tx store.Execer, lines []models.JournalEntryLine) error
	GetByID(ctx context.Context, entryID string) (models.JournalEntry, error)
	GetLines(ctx context.Context, entryID string) ([]models.JournalEntryLine, error)
	UpdateState(ctx context.Context, tx store.Execer, entryID, state string) error
}

// AutoReconciler runs the automatic matching pass after a successful post.
type AutoReconciler interface {
	AutoReconcile(ctx context.Context, entryID string) error
}

// SourceRef identifies the external business object that caused an entry.
type SourceRef struct {
	Module string
	Model  string
	ID     string
}

type EntryLineRequest struct {
	AccountCode     string
	Name            string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	Partner         string
	Currency        *string
	AmountCurrency  *decimal.Decimal
	DateMaturity    *time.Time
	AnalyticAccount *string
	TaxLineID       *string
	TaxBaseAmount   *decimal.Decimal
}

type CreateEntryRequest struct {
	JournalCode string
	Date        time.Time
	Ref         string
	Narration   string
	IsManual    bool
	Actor       string
	Source      *SourceRef
	Lines       []EntryLineRequest
}

// EntryService is the ledger entry engine: entry creation, the
// draft -> posted -> cancel state machine, and the balance invariant.
type EntryService struct {
	txRunner     db.TxRunner
	accounts     AccountLookup
	journals     JournalStore
	calendar     PeriodResolver
	entries      EntryStore
	sequence     *SequenceGenerator
	reconciler   AutoReconciler
	journalLocks *keyedLocks
}

func NewEntryService(txRunner db.TxRunner, accounts AccountLookup, journals JournalStore, calendar PeriodResolver, entries EntryStore, sequence *SequenceGenerator, reconciler AutoReconciler) *EntryService {
	return &EntryService{
		txRunner:     txRunner,
		accounts:     accounts,
		journals:     journals,
		calendar:     calendar,
		entries:      entries,
		sequence:     sequence,
		reconciler:   reconciler,
		journalLocks: newKeyedLocks(),
	}
}

// CreateEntry validates the request against the chart of accounts and the
// fiscal calendar, generates the entry name, and persists the entry with its
// lines atomically. The entry starts in draft.
func (s *EntryService) CreateEntry(ctx context.Context, req CreateEntryRequest) (models.JournalEntry, error) {
	journal, err := s.journals.GetByCode(ctx, req.JournalCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, ErrNotFound
		}
		return models.JournalEntry{}, err
	}
	if !journal.IsActive {
		return models.JournalEntry{}, ErrInvalidState
	}

	period, err := s.calendar.ResolvePeriod(ctx, req.Date)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entryID := uuid.NewString()
	lines := make([]models.JournalEntryLine, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		debit := money.Quantize(lineReq.Debit)
		credit := money.Quantize(lineReq.Credit)
		if debit.IsNegative() || credit.IsNegative() {
			return models.JournalEntry{}, ErrInvalidLine
		}
		if debit.IsPositive() == credit.IsPositive() {
			return models.JournalEntry{}, ErrInvalidLine
		}
		account, err := s.accounts.GetByCode(ctx, lineReq.AccountCode)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.JournalEntry{}, ErrNotFound
			}
			return models.JournalEntry{}, err
		}
		lines = append(lines, models.JournalEntryLine{
			ID:              uuid.NewString(),
			EntryID:         entryID,
			Sequence:        i + 1,
			AccountID:       account.ID,
			Name:            lineReq.Name,
			Partner:         lineReq.Partner,
			Debit:           debit,
			Credit:          credit,
			Currency:        lineReq.Currency,
			AmountCurrency:  lineReq.AmountCurrency,
			DateMaturity:    lineReq.DateMaturity,
			AnalyticAccount: lineReq.AnalyticAccount,
			TaxLineID:       lineReq.TaxLineID,
			TaxBaseAmount:   lineReq.TaxBaseAmount,
		})
	}

	entry := models.JournalEntry{
		ID:        entryID,
		JournalID: journal.ID,
		Date:      req.Date,
		PeriodID:  period.ID,
		Ref:       req.Ref,
		Narration: req.Narration,
		State:     models.StateDraft,
		IsManual:  req.IsManual,
		CreatedBy: req.Actor,
	}
	if req.Source != nil {
		entry.SourceModule = &req.Source.Module
		entry.SourceModel = &req.Source.Model
		entry.SourceID = &req.Source.ID
	}

	// The journal lock holds sequence read and entry insert together so two
	// concurrent callers cannot claim the same number.
	unlock := s.journalLocks.Lock(journal.ID)
	defer unlock()

	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		name, err := s.sequence.Next(ctx, tx, journal, req.Date)
		if err != nil {
			return err
		}
		entry.Name = name
		if err := s.entries.Insert(ctx, tx, entry); err != nil {
			return err
		}
		return s.entries.InsertLines(ctx, tx, lines)
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Post moves a draft entry to posted after checking the balance invariant,
// then runs the automatic reconciliation pass.
func (s *EntryService) Post(ctx context.Context, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if entry.State != models.StateDraft {
		return ErrInvalidState
	}
	lines, err := s.entries.GetLines(ctx, entryID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrEmptyEntry
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return ErrUnbalanced
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.entries.UpdateState(ctx, tx, entryID, models.StatePosted)
	})
	if err != nil {
		return err
	}
	return s.reconciler.AutoReconcile(ctx, entryID)
}

// Cancel moves a posted entry to cancel. Entries with reconciled lines stay
// posted; there is no un-reconcile side effect.
func (s *EntryService) Cancel(ctx context.Context, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if entry.State != models.StatePosted {
		return ErrInvalidState
	}
	lines, err := s.entries.GetLines(ctx, entryID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line.IsReconciled {
			return ErrReconciledLines
		}
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.entries.UpdateState(ctx, tx, entryID, models.StateCancel)
	})
}

// Get returns an entry with its lines.
func (s *EntryService) Get(ctx context.Context, entryID string) (models.JournalEntry, []models.JournalEntryLine, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, nil, ErrNotFound
		}
		return models.JournalEntry{}, nil, err
	}
	lines, err := s.entries.GetLines(ctx, entryID)
	if err != nil {
		return models.JournalEntry{}, nil, err
	}
	return entry, lines, nil
}
