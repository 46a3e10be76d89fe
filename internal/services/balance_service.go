package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/models"
)

type BalanceAccountStore interface {
	GetByCode(ctx context.Context, code string) (models.Account, error)
	GetType(ctx context.Context, code string) (models.AccountType, error)
	ListActive(ctx context.Context) ([]models.Account, error)
}

type BalanceEntryStore interface {
	SumPosted(ctx context.Context, accountID string, startDate, endDate *time.Time) (decimal.Decimal, decimal.Decimal, error)
}

// BalanceService folds posted lines into signed balances. Every report
// (trial balance, balance sheet, income statement, VAT) reads through this
// primitive.
type BalanceService struct {
	accounts BalanceAccountStore
	entries  BalanceEntryStore
}

func NewBalanceService(accounts BalanceAccountStore, entries BalanceEntryStore) *BalanceService {
	return &BalanceService{accounts: accounts, entries: entries}
}

// Balance sums posted debits minus credits over the optional date bounds and
// flips the sign for credit-natured accounts.
func (s *BalanceService) Balance(ctx context.Context, accountCode string, startDate, endDate *time.Time) (decimal.Decimal, error) {
	account, err := s.accounts.GetByCode(ctx, accountCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, ErrNotFound
		}
		return decimal.Zero, err
	}
	accountType, err := s.accounts.GetType(ctx, account.TypeCode)
	if err != nil {
		return decimal.Zero, err
	}
	debitSum, creditSum, err := s.entries.SumPosted(ctx, account.ID, startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}
	balance := debitSum.Sub(creditSum)
	if accountType.NaturalSide == models.SideCredit {
		balance = balance.Neg()
	}
	return balance, nil
}

type AccountBalance struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	TypeCode    string          `json:"type_code"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountBalances folds Balance over every active account, for trial-balance
// style callers.
func (s *BalanceService) AccountBalances(ctx context.Context, startDate, endDate *time.Time) ([]AccountBalance, error) {
	accounts, err := s.accounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	balances := make([]AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balance, err := s.Balance(ctx, account.Code, startDate, endDate)
		if err != nil {
			return nil, err
		}
		balances = append(balances, AccountBalance{
			AccountCode: account.Code,
			AccountName: account.Name,
			TypeCode:    account.TypeCode,
			Balance:     balance,
		})
	}
	return balances, nil
}
