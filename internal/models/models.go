package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Natural balance side of an account type.
const (
	SideDebit  = "debit"
	SideCredit = "credit"
)

// Journal entry and depreciation line lifecycle states.
const (
	StateDraft  = "draft"
	StatePosted = "posted"
	StateCancel = "cancel"
)

// Fiscal year and period states.
const (
	FiscalDraft  = "draft"
	FiscalOpen   = "open"
	FiscalClosed = "closed"
)

// Depreciation methods.
const (
	MethodLinear     = "linear"
	MethodDegressive = "degressive"
)

// Asset lifecycle states.
const (
	AssetDraft = "draft"
	AssetOpen  = "open"
	AssetClose = "close"
	AssetSold  = "sold"
)

type AccountType struct {
	Code         string `db:"code" json:"code"`
	Name         string `db:"name" json:"name"`
	NaturalSide  string `db:"natural_side" json:"natural_side"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

type Account struct {
	ID             string           `db:"id" json:"id"`
	Code           string           `db:"code" json:"code"`
	Name           string           `db:"name" json:"name"`
	TypeCode       string           `db:"type_code" json:"type_code"`
	ParentID       *string          `db:"parent_id" json:"parent_id,omitempty"`
	IsReconcilable bool             `db:"is_reconcilable" json:"is_reconcilable"`
	IsActive       bool             `db:"is_active" json:"is_active"`
	IsTaxAccount   bool             `db:"is_tax_account" json:"is_tax_account"`
	TaxType        *string          `db:"tax_type" json:"tax_type,omitempty"`
	TaxRate        *decimal.Decimal `db:"tax_rate" json:"tax_rate,omitempty"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

type Journal struct {
	ID                     string    `db:"id" json:"id"`
	Code                   string    `db:"code" json:"code"`
	Name                   string    `db:"name" json:"name"`
	Type                   string    `db:"type" json:"type"`
	DefaultDebitAccountID  *string   `db:"default_debit_account_id" json:"default_debit_account_id,omitempty"`
	DefaultCreditAccountID *string   `db:"default_credit_account_id" json:"default_credit_account_id,omitempty"`
	SequenceTemplate       string    `db:"sequence_template" json:"sequence_template"`
	IsActive               bool      `db:"is_active" json:"is_active"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

type FiscalYear struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	State     string    `db:"state" json:"state"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type FiscalPeriod struct {
	ID        string    `db:"id" json:"id"`
	YearID    string    `db:"year_id" json:"year_id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	State     string    `db:"state" json:"state"`
}

type JournalEntry struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	JournalID    string    `db:"journal_id" json:"journal_id"`
	Date         time.Time `db:"date" json:"date"`
	PeriodID     string    `db:"period_id" json:"period_id"`
	Ref          string    `db:"ref" json:"ref"`
	Narration    string    `db:"narration" json:"narration"`
	State        string    `db:"state" json:"state"`
	IsManual     bool      `db:"is_manual" json:"is_manual"`
	SourceModule *string   `db:"source_module" json:"source_module,omitempty"`
	SourceModel  *string   `db:"source_model" json:"source_model,omitempty"`
	SourceID     *string   `db:"source_id" json:"source_id,omitempty"`
	CreatedBy    string    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type JournalEntryLine struct {
	ID               string           `db:"id" json:"id"`
	EntryID          string           `db:"entry_id" json:"entry_id"`
	Sequence         int              `db:"sequence" json:"sequence"`
	AccountID        string           `db:"account_id" json:"account_id"`
	Name             string           `db:"name" json:"name"`
	Partner          string           `db:"partner" json:"partner"`
	Debit            decimal.Decimal  `db:"debit" json:"debit"`
	Credit           decimal.Decimal  `db:"credit" json:"credit"`
	Currency         *string          `db:"currency" json:"currency,omitempty"`
	AmountCurrency   *decimal.Decimal `db:"amount_currency" json:"amount_currency,omitempty"`
	DateMaturity     *time.Time       `db:"date_maturity" json:"date_maturity,omitempty"`
	IsReconciled     bool             `db:"is_reconciled" json:"is_reconciled"`
	ReconciliationID *string          `db:"reconciliation_id" json:"reconciliation_id,omitempty"`
	AnalyticAccount  *string          `db:"analytic_account" json:"analytic_account,omitempty"`
	TaxLineID        *string          `db:"tax_line_id" json:"tax_line_id,omitempty"`
	TaxBaseAmount    *decimal.Decimal `db:"tax_base_amount" json:"tax_base_amount,omitempty"`
}

type Reconciliation struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Date      time.Time `db:"date" json:"date"`
	AccountID string    `db:"account_id" json:"account_id"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type AssetCategory struct {
	ID                    string `db:"id" json:"id"`
	Name                  string `db:"name" json:"name"`
	AssetAccountID        string `db:"asset_account_id" json:"asset_account_id"`
	DepreciationAccountID string `db:"depreciation_account_id" json:"depreciation_account_id"`
	ExpenseAccountID      string `db:"expense_account_id" json:"expense_account_id"`
	Method                string `db:"method" json:"method"`
	DurationYears         int    `db:"duration_years" json:"duration_years"`
}

type Asset struct {
	ID                    string          `db:"id" json:"id"`
	Code                  string          `db:"code" json:"code"`
	Name                  string          `db:"name" json:"name"`
	CategoryID            string          `db:"category_id" json:"category_id"`
	AcquisitionDate       time.Time       `db:"acquisition_date" json:"acquisition_date"`
	AcquisitionValue      decimal.Decimal `db:"acquisition_value" json:"acquisition_value"`
	SalvageValue          decimal.Decimal `db:"salvage_value" json:"salvage_value"`
	Method                *string         `db:"method" json:"method,omitempty"`
	DurationYears         *int            `db:"duration_years" json:"duration_years,omitempty"`
	State                 string          `db:"state" json:"state"`
	FirstDepreciationDate *time.Time      `db:"first_depreciation_date" json:"first_depreciation_date,omitempty"`
	AcquisitionEntryID    *string         `db:"acquisition_entry_id" json:"acquisition_entry_id,omitempty"`
	CreatedAt             time.Time       `db:"created_at" json:"created_at"`
}

type AssetDepreciation struct {
	ID             string          `db:"id" json:"id"`
	AssetID        string          `db:"asset_id" json:"asset_id"`
	Sequence       int             `db:"sequence" json:"sequence"`
	Date           time.Time       `db:"date" json:"date"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	RemainingValue decimal.Decimal `db:"remaining_value" json:"remaining_value"`
	State          string          `db:"state" json:"state"`
	EntryID        *string         `db:"entry_id" json:"entry_id,omitempty"`
}
