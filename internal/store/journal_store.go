package store

import (
	"context"
	"time"

	"ledger/internal/models"
)

type JournalStore struct {
	db DB
}

func NewJournalStore(db DB) *JournalStore {
	return &JournalStore{db: db}
}

func (s *JournalStore) Create(ctx context.Context, tx Execer, journal models.Journal) error {
	query := `
		INSERT INTO journals (id, code, name, type, default_debit_account_id, default_credit_account_id, sequence_template, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := tx.ExecContext(ctx, query,
		journal.ID, journal.Code, journal.Name, journal.Type,
		journal.DefaultDebitAccountID, journal.DefaultCreditAccountID,
		journal.SequenceTemplate, journal.IsActive,
	)
	return err
}

func (s *JournalStore) GetByCode(ctx context.Context, code string) (models.Journal, error) {
	var row models.Journal
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, type, default_debit_account_id, default_credit_account_id, sequence_template, is_active, created_at
		FROM journals
		WHERE code = $1
	`, code)
	if err != nil {
		return models.Journal{}, err
	}
	return row, nil
}

func (s *JournalStore) List(ctx context.Context) ([]models.Journal, error) {
	var rows []models.Journal
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, code, name, type, default_debit_account_id, default_credit_account_id, sequence_template, is_active, created_at
		FROM journals
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LastEntryName returns the name of the journal's most recent entry dated
// inside [yearStart, yearEnd], or "" when the journal has none. Runs on the
// caller's transaction so sequence generation sees uncommitted entries.
func (s *JournalStore) LastEntryName(ctx context.Context, tx Getter, journalID string, yearStart, yearEnd time.Time) (string, error) {
	var name string
	err := tx.GetContext(ctx, &name, `
		SELECT name
		FROM journal_entries
		WHERE journal_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, created_at DESC
		LIMIT 1
	`, journalID, yearStart, yearEnd)
	return name, err
}
