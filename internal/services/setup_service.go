package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ledger/internal/db"
	"ledger/internal/models"
	"ledger/internal/store"
)

type SetupAccountStore interface {
	GetType(ctx context.Context, code string) (models.AccountType, error)
	ListTypes(ctx context.Context) ([]models.AccountType, error)
	Create(ctx context.Context, tx store.Execer, account models.Account) error
	GetByCode(ctx context.Context, code string) (models.Account, error)
	ListActive(ctx context.Context) ([]models.Account, error)
	Deactivate(ctx context.Context, tx store.Execer, accountID string) error
}

type SetupJournalStore interface {
	Create(ctx context.Context, tx store.Execer, journal models.Journal) error
	GetByCode(ctx context.Context, code string) (models.Journal, error)
	List(ctx context.Context) ([]models.Journal, error)
}

// SetupService is the admin surface of the chart of accounts and the journal
// list. Accounts and journals are referenced by history forever, so there is
// no delete: accounts deactivate, journals stay.
type SetupService struct {
	txRunner db.TxRunner
	accounts SetupAccountStore
	journals SetupJournalStore
}

func NewSetupService(txRunner db.TxRunner, accounts SetupAccountStore, journals SetupJournalStore) *SetupService {
	return &SetupService{txRunner: txRunner, accounts: accounts, journals: journals}
}

// CreateAccount validates the type code against the fixed taxonomy and
// persists the account. The parent link is set here or never.
func (s *SetupService) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.Code == "" || account.Name == "" {
		return models.Account{}, ErrInvalidInput
	}
	if _, err := s.accounts.GetType(ctx, account.TypeCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, err
	}
	account.ID = uuid.NewString()
	account.IsActive = true
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.accounts.Create(ctx, tx, account)
	})
	if err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (s *SetupService) ListAccountTypes(ctx context.Context) ([]models.AccountType, error) {
	return s.accounts.ListTypes(ctx)
}

func (s *SetupService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListActive(ctx)
}

// DeactivateAccount hides an account from new postings. Lines already booked
// against it keep their reference.
func (s *SetupService) DeactivateAccount(ctx context.Context, code string) error {
	account, err := s.accounts.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.accounts.Deactivate(ctx, tx, account.ID)
	})
}

func (s *SetupService) CreateJournal(ctx context.Context, journal models.Journal) (models.Journal, error) {
	if journal.Code == "" || journal.SequenceTemplate == "" {
		return models.Journal{}, ErrInvalidInput
	}
	journal.ID = uuid.NewString()
	journal.IsActive = true
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.journals.Create(ctx, tx, journal)
	})
	if err != nil {
		return models.Journal{}, err
	}
	return journal, nil
}

func (s *SetupService) ListJournals(ctx context.Context) ([]models.Journal, error) {
	return s.journals.List(ctx)
}
