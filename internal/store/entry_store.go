package store

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"ledger/internal/models"
)

func stringArray(ids []string) any {
	return pq.Array(ids)
}

type EntryStore struct {
	db DB
}

func NewEntryStore(db DB) *EntryStore {
	return &EntryStore{db: db}
}

func (s *EntryStore) Insert(ctx context.Context, tx Execer, entry models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, name, journal_id, date, period_id, ref, narration, state, is_manual, source_module, source_model, source_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := tx.ExecContext(ctx, query,
		entry.ID, entry.Name, entry.JournalID, entry.Date, entry.PeriodID,
		entry.Ref, entry.Narration, entry.State, entry.IsManual,
		entry.SourceModule, entry.SourceModel, entry.SourceID, entry.CreatedBy,
	)
	return err
}

func (s *EntryStore) InsertLines(ctx context.Context, tx Execer, lines []models.JournalEntryLine) error {
	query := `
		INSERT INTO journal_entry_lines (id, entry_id, sequence, account_id, name, partner, debit, credit, currency, amount_currency, date_maturity, analytic_account, tax_line_id, tax_base_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, query,
			line.ID, line.EntryID, line.Sequence, line.AccountID, line.Name, line.Partner,
			line.Debit, line.Credit, line.Currency, line.AmountCurrency, line.DateMaturity,
			line.AnalyticAccount, line.TaxLineID, line.TaxBaseAmount,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *EntryStore) GetByID(ctx context.Context, entryID string) (models.JournalEntry, error) {
	var row models.JournalEntry
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, journal_id, date, period_id, ref, narration, state, is_manual, source_module, source_model, source_id, created_by, created_at, updated_at
		FROM journal_entries
		WHERE id = $1
	`, entryID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	return row, nil
}

func (s *EntryStore) GetLines(ctx context.Context, entryID string) ([]models.JournalEntryLine, error) {
	var rows []models.JournalEntryLine
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, entry_id, sequence, account_id, name, partner, debit, credit, currency, amount_currency, date_maturity, is_reconciled, reconciliation_id, analytic_account, tax_line_id, tax_base_amount
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY sequence, id
	`, entryID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EntryStore) GetLinesByIDs(ctx context.Context, lineIDs []string) ([]models.JournalEntryLine, error) {
	var rows []models.JournalEntryLine
	query := `
		SELECT id, entry_id, sequence, account_id, name, partner, debit, credit, currency, amount_currency, date_maturity, is_reconciled, reconciliation_id, analytic_account, tax_line_id, tax_base_amount
		FROM journal_entry_lines
		WHERE id = ANY($1)
		ORDER BY sequence, id
	`
	if err := s.db.SelectContext(ctx, &rows, query, stringArray(lineIDs)); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EntryStore) UpdateState(ctx context.Context, tx Execer, entryID, state string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE journal_entries
		SET state = $1, updated_at = NOW()
		WHERE id = $2
	`, state, entryID)
	return err
}

func (s *EntryStore) MarkLinesReconciled(ctx context.Context, tx Execer, lineIDs []string, reconciliationID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE journal_entry_lines
		SET is_reconciled = TRUE, reconciliation_id = $1
		WHERE id = ANY($2)
	`, reconciliationID, stringArray(lineIDs))
	return err
}

func (s *EntryStore) UnmarkReconciled(ctx context.Context, tx Execer, reconciliationID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE journal_entry_lines
		SET is_reconciled = FALSE, reconciliation_id = NULL
		WHERE reconciliation_id = $1
	`, reconciliationID)
	return err
}

// FindMatchCandidate looks for a single unreconciled line on account whose
// signed amount (debit - credit) equals amount, on a posted entry other than
// excludeEntryID. sql.ErrNoRows means no candidate.
func (s *EntryStore) FindMatchCandidate(ctx context.Context, accountID, excludeEntryID string, amount decimal.Decimal) (models.JournalEntryLine, error) {
	var row models.JournalEntryLine
	err := s.db.GetContext(ctx, &row, `
		SELECT l.id, l.entry_id, l.sequence, l.account_id, l.name, l.partner, l.debit, l.credit, l.currency, l.amount_currency, l.date_maturity, l.is_reconciled, l.reconciliation_id, l.analytic_account, l.tax_line_id, l.tax_base_amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1
		  AND l.is_reconciled = FALSE
		  AND e.state = 'posted'
		  AND e.id <> $2
		  AND (l.debit - l.credit) = $3
		ORDER BY e.date, l.id
		LIMIT 1
	`, accountID, excludeEntryID, amount)
	if err != nil {
		return models.JournalEntryLine{}, err
	}
	return row, nil
}

type balanceSums struct {
	Debit  decimal.Decimal `db:"debit_sum"`
	Credit decimal.Decimal `db:"credit_sum"`
}

// SumPosted totals debit and credit over posted lines of an account within
// optional date bounds.
func (s *EntryStore) SumPosted(ctx context.Context, accountID string, startDate, endDate *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0) AS debit_sum,
		       COALESCE(SUM(l.credit), 0) AS credit_sum
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1 AND e.state = 'posted'
	`
	args := []any{accountID}
	if startDate != nil {
		args = append(args, *startDate)
		query += " AND e.date >= $2"
	}
	if endDate != nil {
		args = append(args, *endDate)
		if startDate != nil {
			query += " AND e.date <= $3"
		} else {
			query += " AND e.date <= $2"
		}
	}
	var sums balanceSums
	if err := s.db.GetContext(ctx, &sums, query, args...); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return sums.Debit, sums.Credit, nil
}
