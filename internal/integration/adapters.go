// Package integration adapts business-module events into ledger postings.
// Owning modules (invoicing, payroll) publish narrow fact structs; the
// adapters here translate them into entry requests against the ledger's
// public contract. The ledger core never reaches into another module's
// object shape.
package integration

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledger/internal/models"
	"ledger/internal/services"
)

// LedgerPoster is the slice of the entry engine the adapters call.
type LedgerPoster interface {
	CreateEntry(ctx context.Context, req services.CreateEntryRequest) (models.JournalEntry, error)
	Post(ctx context.Context, entryID string) error
}

// InvoiceFacts is everything the ledger needs to book a customer invoice.
type InvoiceFacts struct {
	InvoiceRef        string
	CustomerRef       string
	Date              time.Time
	DueDate           *time.Time
	Total             decimal.Decimal
	UntaxedTotal      decimal.Decimal
	Tax               decimal.Decimal
	JournalCode       string
	ReceivableAccount string
	IncomeAccount     string
	TaxAccount        string
	Actor             string
}

type PostingResult struct {
	Accounted bool
	EntryID   string
	EntryName string
}

type InvoiceAdapter struct {
	ledger LedgerPoster
	log    zerolog.Logger
}

func NewInvoiceAdapter(ledger LedgerPoster, log zerolog.Logger) *InvoiceAdapter {
	return &InvoiceAdapter{ledger: ledger, log: log}
}

// PostInvoice books an invoice: debit the receivable for the total, credit
// income for the untaxed amount and the tax account for the tax. A refusal
// is reported back to the caller; the invoice must never be marked as
// accounted when the ledger said no.
func (a *InvoiceAdapter) PostInvoice(ctx context.Context, facts InvoiceFacts) (PostingResult, error) {
	lines := []services.EntryLineRequest{
		{
			AccountCode:  facts.ReceivableAccount,
			Name:         "Invoice " + facts.InvoiceRef,
			Debit:        facts.Total,
			Partner:      facts.CustomerRef,
			DateMaturity: facts.DueDate,
		},
		{
			AccountCode: facts.IncomeAccount,
			Name:        "Invoice " + facts.InvoiceRef,
			Credit:      facts.UntaxedTotal,
			Partner:     facts.CustomerRef,
		},
	}
	if facts.Tax.IsPositive() {
		lines = append(lines, services.EntryLineRequest{
			AccountCode:   facts.TaxAccount,
			Name:          "Invoice " + facts.InvoiceRef + " tax",
			Credit:        facts.Tax,
			Partner:       facts.CustomerRef,
			TaxBaseAmount: &facts.UntaxedTotal,
		})
	}
	entry, err := a.ledger.CreateEntry(ctx, services.CreateEntryRequest{
		JournalCode: facts.JournalCode,
		Date:        facts.Date,
		Ref:         facts.InvoiceRef,
		Narration:   "Invoice " + facts.InvoiceRef,
		Actor:       facts.Actor,
		Source:      &services.SourceRef{Module: "sales", Model: "invoice", ID: facts.InvoiceRef},
		Lines:       lines,
	})
	if err != nil {
		a.log.Warn().Err(err).
			Str("invoice", facts.InvoiceRef).
			Msg("invoice refused by ledger; left unaccounted")
		return PostingResult{}, err
	}
	if err := a.ledger.Post(ctx, entry.ID); err != nil {
		a.log.Warn().Err(err).
			Str("invoice", facts.InvoiceRef).
			Str("entry", entry.Name).
			Msg("invoice entry created but not posted")
		return PostingResult{EntryID: entry.ID, EntryName: entry.Name}, err
	}
	return PostingResult{Accounted: true, EntryID: entry.ID, EntryName: entry.Name}, nil
}

// PayrollFacts is the accounting summary of a payroll run.
type PayrollFacts struct {
	RunRef          string
	PeriodLabel     string
	Date            time.Time
	GrossSalaries   decimal.Decimal
	Withholdings    decimal.Decimal
	NetPayable      decimal.Decimal
	JournalCode     string
	ExpenseAccount  string
	WithheldAccount string
	PayableAccount  string
	Actor           string
}

type PayrollAdapter struct {
	ledger LedgerPoster
	log    zerolog.Logger
}

func NewPayrollAdapter(ledger LedgerPoster, log zerolog.Logger) *PayrollAdapter {
	return &PayrollAdapter{ledger: ledger, log: log}
}

// PostRun books a payroll run: debit salary expense for the gross, credit
// withholdings and the net payable.
func (a *PayrollAdapter) PostRun(ctx context.Context, facts PayrollFacts) (PostingResult, error) {
	label := "Payroll " + facts.PeriodLabel
	lines := []services.EntryLineRequest{
		{AccountCode: facts.ExpenseAccount, Name: label, Debit: facts.GrossSalaries},
		{AccountCode: facts.PayableAccount, Name: label, Credit: facts.NetPayable},
	}
	if facts.Withholdings.IsPositive() {
		lines = append(lines, services.EntryLineRequest{
			AccountCode: facts.WithheldAccount,
			Name:        label + " withholdings",
			Credit:      facts.Withholdings,
		})
	}
	entry, err := a.ledger.CreateEntry(ctx, services.CreateEntryRequest{
		JournalCode: facts.JournalCode,
		Date:        facts.Date,
		Ref:         facts.RunRef,
		Narration:   label,
		Actor:       facts.Actor,
		Source:      &services.SourceRef{Module: "payroll", Model: "payroll_run", ID: facts.RunRef},
		Lines:       lines,
	})
	if err != nil {
		a.log.Warn().Err(err).
			Str("payroll_run", facts.RunRef).
			Msg("payroll run refused by ledger; left unaccounted")
		return PostingResult{}, err
	}
	if err := a.ledger.Post(ctx, entry.ID); err != nil {
		a.log.Warn().Err(err).
			Str("payroll_run", facts.RunRef).
			Str("entry", entry.Name).
			Msg("payroll entry created but not posted")
		return PostingResult{EntryID: entry.ID, EntryName: entry.Name}, err
	}
	return PostingResult{Accounted: true, EntryID: entry.ID, EntryName: entry.Name}, nil
}
