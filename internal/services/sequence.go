package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledger/internal/models"
	"ledger/internal/store"
)

// JournalLookup is what sequence generation needs from the journal store.
type JournalLookup interface {
	LastEntryName(ctx context.Context, tx store.Getter, journalID string, yearStart, yearEnd time.Time) (string, error)
}

// SequenceGenerator produces per-journal, per-year entry names from the
// journal's template (YYYY, MM, #### placeholders). The counter restarts at
// 1 each year. Callers must hold the journal's lock across Next and the
// entry insert; the unique (journal_id, name) constraint is the cross-process
// backstop.
type SequenceGenerator struct {
	journals JournalLookup
}

func NewSequenceGenerator(journals JournalLookup) *SequenceGenerator {
	return &SequenceGenerator{journals: journals}
}

func (g *SequenceGenerator) Next(ctx context.Context, tx store.Getter, journal models.Journal, date time.Time) (string, error) {
	yearStart := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	counter := 1
	last, err := g.journals.LastEntryName(ctx, tx, journal.ID, yearStart, yearEnd)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if err == nil {
		if n, ok := parseCounterSuffix(last); ok {
			counter = n + 1
		}
	}
	return renderSequence(journal.SequenceTemplate, date, counter), nil
}

// parseCounterSuffix reads the numeric suffix after the last separator of an
// entry name. An unparseable name restarts the counter.
func parseCounterSuffix(name string) (int, bool) {
	idx := strings.LastIndexAny(name, "/-")
	if idx < 0 || idx == len(name)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(name[idx+1:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func renderSequence(template string, date time.Time, counter int) string {
	out := strings.ReplaceAll(template, "YYYY", fmt.Sprintf("%04d", date.Year()))
	out = strings.ReplaceAll(out, "MM", fmt.Sprintf("%02d", int(date.Month())))
	out = strings.ReplaceAll(out, "####", fmt.Sprintf("%04d", counter))
	return out
}
