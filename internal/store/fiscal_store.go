package store

import (
	"context"
	"time"

	"ledger/internal/models"
)

type FiscalStore struct {
	db DB
}

func NewFiscalStore(db DB) *FiscalStore {
	return &FiscalStore{db: db}
}

func (s *FiscalStore) CreateYear(ctx context.Context, tx Execer, year models.FiscalYear) error {
	query := `
		INSERT INTO fiscal_years (id, name, start_date, end_date, state)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, year.ID, year.Name, year.StartDate, year.EndDate, year.State)
	return err
}

func (s *FiscalStore) GetYear(ctx context.Context, yearID string) (models.FiscalYear, error) {
	var row models.FiscalYear
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, start_date, end_date, state, created_at
		FROM fiscal_years
		WHERE id = $1
	`, yearID)
	if err != nil {
		return models.FiscalYear{}, err
	}
	return row, nil
}

func (s *FiscalStore) UpdateYearState(ctx context.Context, tx Execer, yearID, state string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE fiscal_years
		SET state = $1
		WHERE id = $2
	`, state, yearID)
	return err
}

func (s *FiscalStore) InsertPeriods(ctx context.Context, tx Execer, periods []models.FiscalPeriod) error {
	query := `
		INSERT INTO fiscal_periods (id, year_id, name, start_date, end_date, state)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, period := range periods {
		if _, err := tx.ExecContext(ctx, query, period.ID, period.YearID, period.Name, period.StartDate, period.EndDate, period.State); err != nil {
			return err
		}
	}
	return nil
}

func (s *FiscalStore) ListPeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error) {
	var rows []models.FiscalPeriod
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, year_id, name, start_date, end_date, state
		FROM fiscal_periods
		WHERE year_id = $1
		ORDER BY start_date
	`, yearID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *FiscalStore) CountPeriods(ctx context.Context, yearID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM fiscal_periods
		WHERE year_id = $1
	`, yearID)
	return count, err
}

func (s *FiscalStore) CountPeriodsNotInState(ctx context.Context, yearID, state string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM fiscal_periods
		WHERE year_id = $1 AND state <> $2
	`, yearID, state)
	return count, err
}

func (s *FiscalStore) UpdatePeriodState(ctx context.Context, tx Execer, periodID, state string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE fiscal_periods
		SET state = $1
		WHERE id = $2
	`, state, periodID)
	return err
}

func (s *FiscalStore) UpdatePeriodStatesByYear(ctx context.Context, tx Execer, yearID, from, to string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE fiscal_periods
		SET state = $1
		WHERE year_id = $2 AND state = $3
	`, to, yearID, from)
	return err
}

// ResolveOpenPeriod finds the unique open period covering date. sql.ErrNoRows
// means no posting is legal on that date.
func (s *FiscalStore) ResolveOpenPeriod(ctx context.Context, date time.Time) (models.FiscalPeriod, error) {
	var row models.FiscalPeriod
	err := s.db.GetContext(ctx, &row, `
		SELECT id, year_id, name, start_date, end_date, state
		FROM fiscal_periods
		WHERE state = 'open' AND start_date <= $1 AND end_date >= $1
		LIMIT 1
	`, date)
	if err != nil {
		return models.FiscalPeriod{}, err
	}
	return row, nil
}
