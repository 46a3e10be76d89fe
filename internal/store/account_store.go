package store

import (
	"context"

	"ledger/internal/models"
)

type AccountStore struct {
	db DB
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) GetType(ctx context.Context, code string) (models.AccountType, error) {
	var row models.AccountType
	err := s.db.GetContext(ctx, &row, `
		SELECT code, name, natural_side, display_order
		FROM account_types
		WHERE code = $1
	`, code)
	if err != nil {
		return models.AccountType{}, err
	}
	return row, nil
}

func (s *AccountStore) ListTypes(ctx context.Context) ([]models.AccountType, error) {
	var rows []models.AccountType
	err := s.db.SelectContext(ctx, &rows, `
		SELECT code, name, natural_side, display_order
		FROM account_types
		ORDER BY display_order
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts an account. The parent is fixed at creation; there is no
// re-parent path, which keeps the account tree acyclic by construction.
func (s *AccountStore) Create(ctx context.Context, tx Execer, account models.Account) error {
	query := `
		INSERT INTO accounts (id, code, name, type_code, parent_id, is_reconcilable, is_active, is_tax_account, tax_type, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := tx.ExecContext(ctx, query,
		account.ID, account.Code, account.Name, account.TypeCode, account.ParentID,
		account.IsReconcilable, account.IsActive, account.IsTaxAccount, account.TaxType, account.TaxRate,
	)
	return err
}

func (s *AccountStore) GetByCode(ctx context.Context, code string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, type_code, parent_id, is_reconcilable, is_active, is_tax_account, tax_type, tax_rate, created_at
		FROM accounts
		WHERE code = $1
	`, code)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) GetByID(ctx context.Context, accountID string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, type_code, parent_id, is_reconcilable, is_active, is_tax_account, tax_type, tax_rate, created_at
		FROM accounts
		WHERE id = $1
	`, accountID)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}

func (s *AccountStore) ListActive(ctx context.Context) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, code, name, type_code, parent_id, is_reconcilable, is_active, is_tax_account, tax_type, tax_rate, created_at
		FROM accounts
		WHERE is_active = TRUE
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Deactivate is the only removal path; accounts referenced by lines are
// never deleted.
func (s *AccountStore) Deactivate(ctx context.Context, tx Execer, accountID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET is_active = FALSE
		WHERE id = $1
	`, accountID)
	return err
}
