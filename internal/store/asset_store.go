package store

import (
	"context"

	"ledger/internal/models"
)

type AssetStore struct {
	db DB
}

func NewAssetStore(db DB) *AssetStore {
	return &AssetStore{db: db}
}

func (s *AssetStore) CreateCategory(ctx context.Context, tx Execer, category models.AssetCategory) error {
	query := `
		INSERT INTO asset_categories (id, name, asset_account_id, depreciation_account_id, expense_account_id, method, duration_years)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		category.ID, category.Name, category.AssetAccountID, category.DepreciationAccountID,
		category.ExpenseAccountID, category.Method, category.DurationYears,
	)
	return err
}

func (s *AssetStore) GetCategory(ctx context.Context, categoryID string) (models.AssetCategory, error) {
	var row models.AssetCategory
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, asset_account_id, depreciation_account_id, expense_account_id, method, duration_years
		FROM asset_categories
		WHERE id = $1
	`, categoryID)
	if err != nil {
		return models.AssetCategory{}, err
	}
	return row, nil
}

func (s *AssetStore) CreateAsset(ctx context.Context, tx Execer, asset models.Asset) error {
	query := `
		INSERT INTO assets (id, code, name, category_id, acquisition_date, acquisition_value, salvage_value, method, duration_years, state, first_depreciation_date, acquisition_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := tx.ExecContext(ctx, query,
		asset.ID, asset.Code, asset.Name, asset.CategoryID, asset.AcquisitionDate,
		asset.AcquisitionValue, asset.SalvageValue, asset.Method, asset.DurationYears,
		asset.State, asset.FirstDepreciationDate, asset.AcquisitionEntryID,
	)
	return err
}

func (s *AssetStore) GetAsset(ctx context.Context, assetID string) (models.Asset, error) {
	var row models.Asset
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, category_id, acquisition_date, acquisition_value, salvage_value, method, duration_years, state, first_depreciation_date, acquisition_entry_id, created_at
		FROM assets
		WHERE id = $1
	`, assetID)
	if err != nil {
		return models.Asset{}, err
	}
	return row, nil
}

func (s *AssetStore) UpdateAssetState(ctx context.Context, tx Execer, assetID, state string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE assets
		SET state = $1
		WHERE id = $2
	`, state, assetID)
	return err
}

// DeleteDepreciations clears the asset's board ahead of a wholesale
// regeneration.
func (s *AssetStore) DeleteDepreciations(ctx context.Context, tx Execer, assetID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM asset_depreciations
		WHERE asset_id = $1
	`, assetID)
	return err
}

func (s *AssetStore) InsertDepreciations(ctx context.Context, tx Execer, lines []models.AssetDepreciation) error {
	query := `
		INSERT INTO asset_depreciations (id, asset_id, sequence, date, amount, remaining_value, state, entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, query,
			line.ID, line.AssetID, line.Sequence, line.Date, line.Amount,
			line.RemainingValue, line.State, line.EntryID,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *AssetStore) ListDepreciations(ctx context.Context, assetID string) ([]models.AssetDepreciation, error) {
	var rows []models.AssetDepreciation
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, asset_id, sequence, date, amount, remaining_value, state, entry_id
		FROM asset_depreciations
		WHERE asset_id = $1
		ORDER BY sequence
	`, assetID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AssetStore) GetDepreciation(ctx context.Context, lineID string) (models.AssetDepreciation, error) {
	var row models.AssetDepreciation
	err := s.db.GetContext(ctx, &row, `
		SELECT id, asset_id, sequence, date, amount, remaining_value, state, entry_id
		FROM asset_depreciations
		WHERE id = $1
	`, lineID)
	if err != nil {
		return models.AssetDepreciation{}, err
	}
	return row, nil
}

func (s *AssetStore) MarkDepreciationPosted(ctx context.Context, tx Execer, lineID, entryID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE asset_depreciations
		SET state = 'posted', entry_id = $1
		WHERE id = $2
	`, entryID, lineID)
	return err
}
