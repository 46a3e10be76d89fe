package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ledger/internal/models"
)

type stubBalanceAccounts struct {
	accounts map[string]models.Account
	types    map[string]models.AccountType
}

func (s stubBalanceAccounts) GetByCode(_ context.Context, code string) (models.Account, error) {
	account, ok := s.accounts[code]
	if !ok {
		return models.Account{}, sql.ErrNoRows
	}
	return account, nil
}

func (s stubBalanceAccounts) GetType(_ context.Context, code string) (models.AccountType, error) {
	accountType, ok := s.types[code]
	if !ok {
		return models.AccountType{}, sql.ErrNoRows
	}
	return accountType, nil
}

func (s stubBalanceAccounts) ListActive(context.Context) ([]models.Account, error) {
	var list []models.Account
	for _, account := range s.accounts {
		list = append(list, account)
	}
	return list, nil
}

type stubBalanceEntries struct {
	sums map[string][2]decimal.Decimal
}

func (s stubBalanceEntries) SumPosted(_ context.Context, accountID string, _, _ *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	pair := s.sums[accountID]
	return pair[0], pair[1], nil
}

func balanceFixture() (stubBalanceAccounts, stubBalanceEntries) {
	accounts := stubBalanceAccounts{
		accounts: map[string]models.Account{
			"411000": {ID: "a-recv", Code: "411000", Name: "Receivables", TypeCode: "asset", IsActive: true},
			"707000": {ID: "a-sales", Code: "707000", Name: "Sales", TypeCode: "income", IsActive: true},
		},
		types: map[string]models.AccountType{
			"asset":  {Code: "asset", NaturalSide: models.SideDebit},
			"income": {Code: "income", NaturalSide: models.SideCredit},
		},
	}
	entries := stubBalanceEntries{
		sums: map[string][2]decimal.Decimal{
			"a-recv":  {amount("300.00"), amount("100.00")},
			"a-sales": {amount("100.00"), amount("300.00")},
		},
	}
	return accounts, entries
}

func TestBalanceDebitNaturedAccount(t *testing.T) {
	accounts, entries := balanceFixture()
	service := NewBalanceService(accounts, entries)

	balance, err := service.Balance(context.Background(), "411000", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(amount("200.00")) {
		t.Fatalf("expected 200.00, got %s", balance)
	}
}

func TestBalanceCreditNaturedAccountFlipsSign(t *testing.T) {
	accounts, entries := balanceFixture()
	service := NewBalanceService(accounts, entries)

	balance, err := service.Balance(context.Background(), "707000", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(amount("200.00")) {
		t.Fatalf("expected 200.00, got %s", balance)
	}
}

func TestBalanceUnknownAccount(t *testing.T) {
	accounts, entries := balanceFixture()
	service := NewBalanceService(accounts, entries)

	if _, err := service.Balance(context.Background(), "999999", nil, nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountBalancesCoversActiveAccounts(t *testing.T) {
	accounts, entries := balanceFixture()
	service := NewBalanceService(accounts, entries)

	balances, err := service.AccountBalances(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(balances))
	}
	for _, balance := range balances {
		if !balance.Balance.Equal(amount("200.00")) {
			t.Fatalf("account %s: expected 200.00, got %s", balance.AccountCode, balance.Balance)
		}
	}
}
