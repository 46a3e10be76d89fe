package store

import (
	"context"

	"ledger/internal/models"
)

type ReconciliationStore struct {
	db DB
}

func NewReconciliationStore(db DB) *ReconciliationStore {
	return &ReconciliationStore{db: db}
}

func (s *ReconciliationStore) Insert(ctx context.Context, tx Execer, rec models.Reconciliation) error {
	query := `
		INSERT INTO reconciliations (id, name, date, account_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, rec.ID, rec.Name, rec.Date, rec.AccountID, rec.CreatedBy)
	return err
}

func (s *ReconciliationStore) GetByID(ctx context.Context, reconciliationID string) (models.Reconciliation, error) {
	var row models.Reconciliation
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, date, account_id, created_by, created_at
		FROM reconciliations
		WHERE id = $1
	`, reconciliationID)
	if err != nil {
		return models.Reconciliation{}, err
	}
	return row, nil
}

// Delete removes the group row. Member lines must be unmarked first; groups
// are only ever created or deleted as a whole.
func (s *ReconciliationStore) Delete(ctx context.Context, tx Execer, reconciliationID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM reconciliations
		WHERE id = $1
	`, reconciliationID)
	return err
}
