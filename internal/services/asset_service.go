package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"ledger/internal/db"
	"ledger/internal/models"
	"ledger/internal/money"
	"ledger/internal/store"
)

type AssetStore interface {
	CreateCategory(ctx context.Context, tx store.Execer, category models.AssetCategory) error
	GetCategory(ctx context.Context, categoryID string) (models.AssetCategory, error)
	CreateAsset(ctx context.Context, tx store.Execer, asset models.Asset) error
	GetAsset(ctx context.Context, assetID string) (models.Asset, error)
	UpdateAssetState(ctx context.Context, tx store.Execer, assetID, state string) error
	DeleteDepreciations(ctx context.Context, tx store.Execer, assetID string) error
	InsertDepreciations(ctx context.Context, tx store.Execer, lines []models.AssetDepreciation) error
	ListDepreciations(ctx context.Context, assetID string) ([]models.AssetDepreciation, error)
	GetDepreciation(ctx context.Context, lineID string) (models.AssetDepreciation, error)
	MarkDepreciationPosted(ctx context.Context, tx store.Execer, lineID, entryID string) error
}

// EntryCreator is the slice of the entry engine asset posting goes through.
type EntryCreator interface {
	CreateEntry(ctx context.Context, req CreateEntryRequest) (models.JournalEntry, error)
	Post(ctx context.Context, entryID string) error
}

// AssetService computes depreciation boards and books their lines as ledger
// entries.
type AssetService struct {
	txRunner db.TxRunner
	assets   AssetStore
	accounts AccountLookup
	entries  EntryCreator
}

func NewAssetService(txRunner db.TxRunner, assets AssetStore, accounts AccountLookup, entries EntryCreator) *AssetService {
	return &AssetService{txRunner: txRunner, assets: assets, accounts: accounts, entries: entries}
}

func (s *AssetService) CreateCategory(ctx context.Context, category models.AssetCategory) (models.AssetCategory, error) {
	category.ID = uuid.NewString()
	if category.Method == "" {
		category.Method = models.MethodLinear
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.assets.CreateCategory(ctx, tx, category)
	})
	if err != nil {
		return models.AssetCategory{}, err
	}
	return category, nil
}

func (s *AssetService) CreateAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	asset.ID = uuid.NewString()
	asset.State = models.AssetDraft
	asset.AcquisitionValue = money.Quantize(asset.AcquisitionValue)
	asset.SalvageValue = money.Quantize(asset.SalvageValue)
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.assets.CreateAsset(ctx, tx, asset)
	})
	if err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// ComputeBoard regenerates the asset's depreciation schedule wholesale.
// Existing lines are discarded; a draft asset becomes open.
func (s *AssetService) ComputeBoard(ctx context.Context, assetID string) ([]models.AssetDepreciation, error) {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if asset.State != models.AssetDraft && asset.State != models.AssetOpen {
		return nil, ErrAssetClosed
	}
	category, err := s.assets.GetCategory(ctx, asset.CategoryID)
	if err != nil {
		return nil, err
	}

	method := category.Method
	if asset.Method != nil {
		method = *asset.Method
	}
	years := category.DurationYears
	if asset.DurationYears != nil {
		years = *asset.DurationYears
	}
	depreciable := money.Quantize(asset.AcquisitionValue.Sub(asset.SalvageValue))
	start := asset.AcquisitionDate
	if asset.FirstDepreciationDate != nil {
		start = *asset.FirstDepreciationDate
	}

	var board []boardLine
	if method == models.MethodDegressive {
		board = degressiveBoard(depreciable, start, years)
	} else {
		board = linearBoard(depreciable, start, years)
	}

	lines := make([]models.AssetDepreciation, 0, len(board))
	for i, item := range board {
		lines = append(lines, models.AssetDepreciation{
			ID:             uuid.NewString(),
			AssetID:        asset.ID,
			Sequence:       i + 1,
			Date:           item.date,
			Amount:         item.amount,
			RemainingValue: item.remaining,
			State:          models.StateDraft,
		})
	}

	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.assets.DeleteDepreciations(ctx, tx, asset.ID); err != nil {
			return err
		}
		if err := s.assets.InsertDepreciations(ctx, tx, lines); err != nil {
			return err
		}
		if asset.State == models.AssetDraft {
			return s.assets.UpdateAssetState(ctx, tx, asset.ID, models.AssetOpen)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// PostDepreciationLine books a draft board line as a balanced ledger entry:
// debit the category's expense account, credit its accumulated-depreciation
// account. The line then carries the entry reference and turns posted.
func (s *AssetService) PostDepreciationLine(ctx context.Context, lineID, journalCode string, postingDate time.Time, actor string) (models.JournalEntry, error) {
	line, err := s.assets.GetDepreciation(ctx, lineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, ErrNotFound
		}
		return models.JournalEntry{}, err
	}
	if line.State != models.StateDraft {
		return models.JournalEntry{}, ErrInvalidState
	}
	asset, err := s.assets.GetAsset(ctx, line.AssetID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	category, err := s.assets.GetCategory(ctx, asset.CategoryID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	expenseAccount, err := s.accounts.GetByID(ctx, category.ExpenseAccountID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	depreciationAccount, err := s.accounts.GetByID(ctx, category.DepreciationAccountID)
	if err != nil {
		return models.JournalEntry{}, err
	}

	label := fmt.Sprintf("Depreciation %s #%d", asset.Name, line.Sequence)
	entry, err := s.entries.CreateEntry(ctx, CreateEntryRequest{
		JournalCode: journalCode,
		Date:        postingDate,
		Ref:         asset.Code,
		Narration:   label,
		Actor:       actor,
		Source:      &SourceRef{Module: "assets", Model: "asset_depreciation", ID: line.ID},
		Lines: []EntryLineRequest{
			{AccountCode: expenseAccount.Code, Name: label, Debit: line.Amount},
			{AccountCode: depreciationAccount.Code, Name: label, Credit: line.Amount},
		},
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	if err := s.entries.Post(ctx, entry.ID); err != nil {
		return models.JournalEntry{}, err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.assets.MarkDepreciationPosted(ctx, tx, line.ID, entry.ID)
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// CloseAsset ends an asset's life (close or sold). Closed assets refuse
// board recomputes.
func (s *AssetService) CloseAsset(ctx context.Context, assetID, state string) error {
	if state != models.AssetClose && state != models.AssetSold {
		return ErrInvalidState
	}
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if asset.State != models.AssetOpen {
		return ErrInvalidState
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.assets.UpdateAssetState(ctx, tx, assetID, state)
	})
}

func (s *AssetService) ListBoard(ctx context.Context, assetID string) ([]models.AssetDepreciation, error) {
	return s.assets.ListDepreciations(ctx, assetID)
}

type boardLine struct {
	date      time.Time
	amount    decimal.Decimal
	remaining decimal.Decimal
}

// linearBoard spreads the depreciable value over monthly periods. The final
// period takes the remaining balance so the board sums exactly.
func linearBoard(depreciable decimal.Decimal, start time.Time, years int) []boardLine {
	totalPeriods := years * 12
	if totalPeriods <= 0 || !depreciable.IsPositive() {
		return nil
	}
	monthly := depreciable.
		Div(decimal.NewFromInt(int64(years))).
		Div(decimal.NewFromInt(12)).
		Round(2)
	remaining := depreciable
	var board []boardLine
	for i := 0; i < totalPeriods; i++ {
		amount := monthly
		if i == totalPeriods-1 || amount.GreaterThan(remaining) {
			amount = remaining
		}
		remaining = remaining.Sub(amount)
		board = append(board, boardLine{
			date:      start.AddDate(0, i, 0),
			amount:    amount,
			remaining: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return board
}

// degressiveBoard applies the declining-balance method with the fiscal
// coefficient tied to asset life. Each year takes the larger of the
// straight-line remainder and the degressive amount; the final year absorbs
// the remainder.
func degressiveBoard(depreciable decimal.Decimal, start time.Time, years int) []boardLine {
	if years <= 0 || !depreciable.IsPositive() {
		return nil
	}
	rate := degressiveCoefficient(years).Div(decimal.NewFromInt(int64(years)))
	remaining := depreciable
	var board []boardLine
	for y := 0; y < years; y++ {
		var amount decimal.Decimal
		if y == years-1 {
			amount = remaining
		} else {
			yearsLeft := decimal.NewFromInt(int64(years - y))
			linear := remaining.Div(yearsLeft).Round(2)
			degressive := remaining.Mul(rate).Round(2)
			amount = linear
			if degressive.GreaterThan(amount) {
				amount = degressive
			}
		}
		remaining = remaining.Sub(amount)
		board = append(board, boardLine{
			date:      start.AddDate(y, 0, 0),
			amount:    amount,
			remaining: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return board
}

func degressiveCoefficient(years int) decimal.Decimal {
	switch {
	case years <= 4:
		return decimal.NewFromFloat(1.5)
	case years <= 6:
		return decimal.NewFromFloat(2.0)
	default:
		return decimal.NewFromFloat(2.5)
	}
}
