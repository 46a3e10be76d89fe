package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger/internal/models"
	"ledger/internal/services"
)

type stubLedger struct {
	createFn func(ctx context.Context, req services.CreateEntryRequest) (models.JournalEntry, error)
	postFn   func(ctx context.Context, entryID string) error
}

func (s stubLedger) CreateEntry(ctx context.Context, req services.CreateEntryRequest) (models.JournalEntry, error) {
	return s.createFn(ctx, req)
}

func (s stubLedger) Post(ctx context.Context, entryID string) error {
	if s.postFn == nil {
		return nil
	}
	return s.postFn(ctx, entryID)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func invoiceFixture() InvoiceFacts {
	return InvoiceFacts{
		InvoiceRef:        "INV-2024-0042",
		CustomerRef:       "ACME",
		Date:              time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Total:             dec("120.00"),
		UntaxedTotal:      dec("100.00"),
		Tax:               dec("20.00"),
		JournalCode:       "VT",
		ReceivableAccount: "411000",
		IncomeAccount:     "707000",
		TaxAccount:        "445710",
		Actor:             "billing",
	}
}

func TestPostInvoiceBuildsBalancedEntry(t *testing.T) {
	var captured services.CreateEntryRequest
	var posted string
	ledger := stubLedger{
		createFn: func(_ context.Context, req services.CreateEntryRequest) (models.JournalEntry, error) {
			captured = req
			return models.JournalEntry{ID: "e1", Name: "VT/2024/0042"}, nil
		},
		postFn: func(_ context.Context, entryID string) error {
			posted = entryID
			return nil
		},
	}
	adapter := NewInvoiceAdapter(ledger, zerolog.Nop())

	result, err := adapter.PostInvoice(context.Background(), invoiceFixture())
	require.NoError(t, err)
	assert.True(t, result.Accounted)
	assert.Equal(t, "VT/2024/0042", result.EntryName)
	assert.Equal(t, "e1", posted)

	require.Len(t, captured.Lines, 3)
	assert.True(t, captured.Lines[0].Debit.Equal(dec("120.00")))
	assert.True(t, captured.Lines[1].Credit.Equal(dec("100.00")))
	assert.True(t, captured.Lines[2].Credit.Equal(dec("20.00")))
	require.NotNil(t, captured.Lines[2].TaxBaseAmount)
	assert.True(t, captured.Lines[2].TaxBaseAmount.Equal(dec("100.00")))
	require.NotNil(t, captured.Source)
	assert.Equal(t, "sales", captured.Source.Module)
}

func TestPostInvoiceSkipsZeroTaxLine(t *testing.T) {
	var captured services.CreateEntryRequest
	ledger := stubLedger{
		createFn: func(_ context.Context, req services.CreateEntryRequest) (models.JournalEntry, error) {
			captured = req
			return models.JournalEntry{ID: "e1"}, nil
		},
	}
	adapter := NewInvoiceAdapter(ledger, zerolog.Nop())
	facts := invoiceFixture()
	facts.Total = dec("100.00")
	facts.Tax = decimal.Zero

	_, err := adapter.PostInvoice(context.Background(), facts)
	require.NoError(t, err)
	assert.Len(t, captured.Lines, 2)
}

func TestPostInvoiceRefusalLeavesUnaccounted(t *testing.T) {
	ledger := stubLedger{
		createFn: func(context.Context, services.CreateEntryRequest) (models.JournalEntry, error) {
			return models.JournalEntry{}, services.ErrNoOpenPeriod
		},
	}
	adapter := NewInvoiceAdapter(ledger, zerolog.Nop())

	result, err := adapter.PostInvoice(context.Background(), invoiceFixture())
	assert.ErrorIs(t, err, services.ErrNoOpenPeriod)
	assert.False(t, result.Accounted)
}

func TestPostInvoiceFailedPostReportsEntry(t *testing.T) {
	ledger := stubLedger{
		createFn: func(context.Context, services.CreateEntryRequest) (models.JournalEntry, error) {
			return models.JournalEntry{ID: "e1", Name: "VT/2024/0042"}, nil
		},
		postFn: func(context.Context, string) error {
			return services.ErrUnbalanced
		},
	}
	adapter := NewInvoiceAdapter(ledger, zerolog.Nop())

	result, err := adapter.PostInvoice(context.Background(), invoiceFixture())
	assert.ErrorIs(t, err, services.ErrUnbalanced)
	assert.False(t, result.Accounted)
	assert.Equal(t, "e1", result.EntryID)
}

func TestPostPayrollRun(t *testing.T) {
	var captured services.CreateEntryRequest
	ledger := stubLedger{
		createFn: func(_ context.Context, req services.CreateEntryRequest) (models.JournalEntry, error) {
			captured = req
			return models.JournalEntry{ID: "e2", Name: "OD/2024/0007"}, nil
		},
	}
	adapter := NewPayrollAdapter(ledger, zerolog.Nop())

	result, err := adapter.PostRun(context.Background(), PayrollFacts{
		RunRef:          "RUN-2024-03",
		PeriodLabel:     "03/2024",
		Date:            time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		GrossSalaries:   dec("50000.00"),
		Withholdings:    dec("12000.00"),
		NetPayable:      dec("38000.00"),
		JournalCode:     "OD",
		ExpenseAccount:  "641000",
		WithheldAccount: "431000",
		PayableAccount:  "421000",
		Actor:           "payroll",
	})
	require.NoError(t, err)
	assert.True(t, result.Accounted)

	require.Len(t, captured.Lines, 3)
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range captured.Lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	assert.True(t, totalDebit.Equal(totalCredit), "payroll posting must balance: %s vs %s", totalDebit, totalCredit)
	require.NotNil(t, captured.Source)
	assert.Equal(t, "payroll", captured.Source.Module)
}
