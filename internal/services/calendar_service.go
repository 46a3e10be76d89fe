package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ledger/internal/db"
	"ledger/internal/models"
	"ledger/internal/store"
)

// FiscalStore is the slice of the fiscal store the calendar needs.
type FiscalStore interface {
	CreateYear(ctx context.Context, tx store.Execer, year models.FiscalYear) error
	GetYear(ctx context.Context, yearID string) (models.FiscalYear, error)
	UpdateYearState(ctx context.Context, tx store.Execer, yearID, state string) error
	InsertPeriods(ctx context.Context, tx store.Execer, periods []models.FiscalPeriod) error
	ListPeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error)
	CountPeriods(ctx context.Context, yearID string) (int, error)
	CountPeriodsNotInState(ctx context.Context, yearID, state string) (int, error)
	UpdatePeriodState(ctx context.Context, tx store.Execer, periodID, state string) error
	UpdatePeriodStatesByYear(ctx context.Context, tx store.Execer, yearID, from, to string) error
	ResolveOpenPeriod(ctx context.Context, date time.Time) (models.FiscalPeriod, error)
}

// CalendarService owns the fiscal calendar: years, their monthly periods,
// and the open-period gate every posting goes through.
type CalendarService struct {
	txRunner db.TxRunner
	fiscal   FiscalStore
}

func NewCalendarService(txRunner db.TxRunner, fiscal FiscalStore) *CalendarService {
	return &CalendarService{txRunner: txRunner, fiscal: fiscal}
}

func (s *CalendarService) CreateYear(ctx context.Context, name string, startDate, endDate time.Time) (models.FiscalYear, error) {
	if !startDate.Before(endDate) {
		return models.FiscalYear{}, ErrInvalidState
	}
	year := models.FiscalYear{
		ID:        uuid.NewString(),
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
		State:     models.FiscalDraft,
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.fiscal.CreateYear(ctx, tx, year)
	})
	if err != nil {
		return models.FiscalYear{}, err
	}
	return year, nil
}

// GeneratePeriods slices the year into consecutive calendar months. The last
// slice is truncated to the year's end date. Generated periods mirror the
// year's state: open for an open year, draft otherwise.
func (s *CalendarService) GeneratePeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error) {
	year, err := s.fiscal.GetYear(ctx, yearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if year.State == models.FiscalClosed {
		return nil, ErrInvalidState
	}
	existing, err := s.fiscal.CountPeriods(ctx, yearID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrInvalidState
	}

	periodState := models.FiscalDraft
	if year.State == models.FiscalOpen {
		periodState = models.FiscalOpen
	}
	var periods []models.FiscalPeriod
	cursor := year.StartDate
	for !cursor.After(year.EndDate) {
		monthEnd := endOfMonth(cursor)
		if monthEnd.After(year.EndDate) {
			monthEnd = year.EndDate
		}
		periods = append(periods, models.FiscalPeriod{
			ID:        uuid.NewString(),
			YearID:    year.ID,
			Name:      cursor.Format("01/2006"),
			StartDate: cursor,
			EndDate:   monthEnd,
			State:     periodState,
		})
		cursor = monthEnd.AddDate(0, 0, 1)
	}

	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.fiscal.InsertPeriods(ctx, tx, periods)
	})
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (s *CalendarService) OpenYear(ctx context.Context, yearID string) error {
	year, err := s.fiscal.GetYear(ctx, yearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if year.State != models.FiscalDraft {
		return ErrInvalidState
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.fiscal.UpdateYearState(ctx, tx, yearID, models.FiscalOpen); err != nil {
			return err
		}
		return s.fiscal.UpdatePeriodStatesByYear(ctx, tx, yearID, models.FiscalDraft, models.FiscalOpen)
	})
}

// CloseYear refuses while any period of the year is not yet closed.
func (s *CalendarService) CloseYear(ctx context.Context, yearID string) error {
	year, err := s.fiscal.GetYear(ctx, yearID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if year.State != models.FiscalOpen {
		return ErrInvalidState
	}
	pending, err := s.fiscal.CountPeriodsNotInState(ctx, yearID, models.FiscalClosed)
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrInvalidState
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.fiscal.UpdateYearState(ctx, tx, yearID, models.FiscalClosed)
	})
}

func (s *CalendarService) ClosePeriod(ctx context.Context, periodID string) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.fiscal.UpdatePeriodState(ctx, tx, periodID, models.FiscalClosed)
	})
}

func (s *CalendarService) ListPeriods(ctx context.Context, yearID string) ([]models.FiscalPeriod, error) {
	return s.fiscal.ListPeriods(ctx, yearID)
}

// ResolvePeriod returns the unique open period covering date, or
// ErrNoOpenPeriod.
func (s *CalendarService) ResolvePeriod(ctx context.Context, date time.Time) (models.FiscalPeriod, error) {
	period, err := s.fiscal.ResolveOpenPeriod(ctx, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FiscalPeriod{}, ErrNoOpenPeriod
		}
		return models.FiscalPeriod{}, err
	}
	return period, nil
}

func endOfMonth(date time.Time) time.Time {
	firstOfMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return firstOfMonth.AddDate(0, 1, -1)
}
