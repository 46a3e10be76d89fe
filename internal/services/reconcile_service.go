package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ledger/internal/db"
	"ledger/internal/models"
	"ledger/internal/money"
	"ledger/internal/store"
)

type ReconcileEntryStore interface {
	GetByID(ctx context.Context, entryID string) (models.JournalEntry, error)
	GetLines(ctx context.Context, entryID string) ([]models.JournalEntryLine, error)
	GetLinesByIDs(ctx context.Context, lineIDs []string) ([]models.JournalEntryLine, error)
	MarkLinesReconciled(ctx context.Context, tx store.Execer, lineIDs []string, reconciliationID string) error
	UnmarkReconciled(ctx context.Context, tx store.Execer, reconciliationID string) error
	FindMatchCandidate(ctx context.Context, accountID, excludeEntryID string, amount decimal.Decimal) (models.JournalEntryLine, error)
}

type ReconciliationStore interface {
	Insert(ctx context.Context, tx store.Execer, rec models.Reconciliation) error
	GetByID(ctx context.Context, reconciliationID string) (models.Reconciliation, error)
	Delete(ctx context.Context, tx store.Execer, reconciliationID string) error
}

// ReconcileService groups offsetting lines on reconcilable accounts, both on
// explicit request and automatically after a post. Work on one account is
// serialized through a per-account lock so two posts cannot claim the same
// offsetting line.
type ReconcileService struct {
	txRunner     db.TxRunner
	accounts     AccountLookup
	entries      ReconcileEntryStore
	recs         ReconciliationStore
	accountLocks *keyedLocks
}

func NewReconcileService(txRunner db.TxRunner, accounts AccountLookup, entries ReconcileEntryStore, recs ReconciliationStore) *ReconcileService {
	return &ReconcileService{
		txRunner:     txRunner,
		accounts:     accounts,
		entries:      entries,
		recs:         recs,
		accountLocks: newKeyedLocks(),
	}
}

// Reconcile groups the given lines. All lines must live on the same
// reconcilable account, none may be grouped already, and the group must net
// to zero within the 0.01 tolerance.
func (s *ReconcileService) Reconcile(ctx context.Context, lineIDs []string, actor string) (models.Reconciliation, error) {
	if len(lineIDs) == 0 {
		return models.Reconciliation{}, ErrNotFound
	}
	lines, err := s.entries.GetLinesByIDs(ctx, lineIDs)
	if err != nil {
		return models.Reconciliation{}, err
	}
	if len(lines) != len(lineIDs) {
		return models.Reconciliation{}, ErrNotFound
	}
	accountID := lines[0].AccountID
	for _, line := range lines {
		if line.AccountID != accountID {
			return models.Reconciliation{}, ErrAccountMismatch
		}
		if line.IsReconciled {
			return models.Reconciliation{}, ErrAlreadyReconciled
		}
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reconciliation{}, ErrNotFound
		}
		return models.Reconciliation{}, err
	}
	if !account.IsReconcilable {
		return models.Reconciliation{}, ErrNotReconcilable
	}
	residual := decimal.Zero
	for _, line := range lines {
		residual = residual.Add(line.Debit).Sub(line.Credit)
	}
	if !money.WithinTolerance(residual) {
		return models.Reconciliation{}, ErrImbalancedGroup
	}

	unlock := s.accountLocks.Lock(accountID)
	defer unlock()
	return s.createGroup(ctx, account, lineIDs, actor)
}

// AutoReconcile runs the matching pass for a freshly posted entry. Per
// reconcilable account touched by the entry: lines netting to zero within
// the entry are grouped directly; otherwise a single offsetting unreconciled
// line on another posted entry is searched for. Multi-line matching across
// several candidate entries is deliberately not attempted.
func (s *ReconcileService) AutoReconcile(ctx context.Context, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if entry.State != models.StatePosted {
		return nil
	}
	lines, err := s.entries.GetLines(ctx, entryID)
	if err != nil {
		return err
	}

	byAccount := make(map[string][]models.JournalEntryLine)
	var accountOrder []string
	for _, line := range lines {
		if line.IsReconciled {
			continue
		}
		if _, seen := byAccount[line.AccountID]; !seen {
			accountOrder = append(accountOrder, line.AccountID)
		}
		byAccount[line.AccountID] = append(byAccount[line.AccountID], line)
	}

	for _, accountID := range accountOrder {
		account, err := s.accounts.GetByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !account.IsReconcilable {
			continue
		}
		group := byAccount[accountID]
		if err := s.autoMatchAccount(ctx, entry, account, group); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReconcileService) autoMatchAccount(ctx context.Context, entry models.JournalEntry, account models.Account, group []models.JournalEntryLine) error {
	unlock := s.accountLocks.Lock(account.ID)
	defer unlock()

	net := decimal.Zero
	lineIDs := make([]string, 0, len(group))
	for _, line := range group {
		net = net.Add(line.Debit).Sub(line.Credit)
		lineIDs = append(lineIDs, line.ID)
	}

	if net.IsZero() {
		if len(group) < 2 {
			return nil
		}
		_, err := s.createGroup(ctx, account, lineIDs, entry.CreatedBy)
		return err
	}

	candidate, err := s.entries.FindMatchCandidate(ctx, account.ID, entry.ID, net.Neg())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	_, err = s.createGroup(ctx, account, append(lineIDs, candidate.ID), entry.CreatedBy)
	return err
}

func (s *ReconcileService) createGroup(ctx context.Context, account models.Account, lineIDs []string, actor string) (models.Reconciliation, error) {
	rec := models.Reconciliation{
		ID:        uuid.NewString(),
		Name:      reconciliationName(account.Code),
		Date:      time.Now().UTC(),
		AccountID: account.ID,
		CreatedBy: actor,
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.recs.Insert(ctx, tx, rec); err != nil {
			return err
		}
		return s.entries.MarkLinesReconciled(ctx, tx, lineIDs, rec.ID)
	})
	if err != nil {
		return models.Reconciliation{}, err
	}
	return rec, nil
}

// DeleteReconciliation dissolves a group as a whole: member lines become
// unreconciled again and the group row is removed. Groups are immutable
// otherwise.
func (s *ReconcileService) DeleteReconciliation(ctx context.Context, reconciliationID string) error {
	rec, err := s.recs.GetByID(ctx, reconciliationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	unlock := s.accountLocks.Lock(rec.AccountID)
	defer unlock()
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.entries.UnmarkReconciled(ctx, tx, reconciliationID); err != nil {
			return err
		}
		return s.recs.Delete(ctx, tx, reconciliationID)
	})
}

func reconciliationName(accountCode string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "LTR/" + accountCode + "/" + suffix
}
